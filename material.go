package lantern

type Material struct {
	Ambient   [4]float32
	Diffuse   [4]float32
	Emissive  [4]float32
	Specular  [4]float32
	Shininess float32
}

// DullMaterial is used for the room surfaces: no specular term at all.
func DullMaterial() Material {
	return Material{
		Ambient:   [4]float32{0.2, 0.2, 0.2, 1},
		Diffuse:   [4]float32{0.8, 0.8, 0.8, 1},
		Emissive:  [4]float32{0, 0, 0, 1},
		Specular:  [4]float32{0, 0, 0, 1},
		Shininess: 0,
	}
}

// ShinyMaterial is used for the light marker spheres.
func ShinyMaterial() Material {
	return Material{
		Ambient:   [4]float32{0.2, 0.2, 0.2, 1},
		Diffuse:   [4]float32{0.8, 0.8, 0.8, 1},
		Emissive:  [4]float32{0, 0, 0, 1},
		Specular:  [4]float32{1, 1, 1, 1},
		Shininess: 32,
	}
}
