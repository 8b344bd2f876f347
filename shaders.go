package lantern

// All scene pipelines share one uniform block layout (sceneUniforms on
// the Go side). params packs the scalars: x = shininess, y = number of
// lights, z = light index for the multi-pass technique.
const shaderSceneCommon = `
struct Light {
    position: vec4<f32>, // w holds the falloff radius
    ambient: vec4<f32>,
    diffuse: vec4<f32>,
    specular: vec4<f32>,
};

struct SceneUniforms {
    world: mat4x4<f32>,
    world_it: mat4x4<f32>,
    view_proj: mat4x4<f32>,
    camera_pos: vec4<f32>,
    global_ambient: vec4<f32>,
    mat_ambient: vec4<f32>,
    mat_diffuse: vec4<f32>,
    mat_emissive: vec4<f32>,
    mat_specular: vec4<f32>,
    params: vec4<f32>,
    lights: array<Light, 8>,
};

@group(0) @binding(0) var<uniform> scene: SceneUniforms;
@group(0) @binding(1) var color_map: texture_2d<f32>;
@group(0) @binding(2) var color_sampler: sampler;

struct VsOut {
    @builtin(position) clip_pos: vec4<f32>,
    @location(0) world_pos: vec3<f32>,
    @location(1) uv: vec2<f32>,
    @location(2) normal: vec3<f32>,
};

@vertex
fn vs_main(
    @location(0) pos: vec3<f32>,
    @location(1) uv: vec2<f32>,
    @location(2) normal: vec3<f32>,
) -> VsOut {
    var out: VsOut;
    let world_pos = scene.world * vec4<f32>(pos, 1.0);
    out.clip_pos = scene.view_proj * world_pos;
    out.world_pos = world_pos.xyz;
    out.uv = uv;
    out.normal = (scene.world_it * vec4<f32>(normal, 0.0)).xyz;
    return out;
}

// Blinn-Phong contribution of one light. Attenuation follows the
// classic radius falloff: 1 - (d/r)^2, clamped.
fn shade_light(i: u32, p: vec3<f32>, n: vec3<f32>, v: vec3<f32>) -> vec3<f32> {
    let light = scene.lights[i];
    let delta = (light.position.xyz - p) / light.position.w;
    let atten = clamp(1.0 - dot(delta, delta), 0.0, 1.0);

    let l = normalize(light.position.xyz - p);
    let h = normalize(l + v);
    let n_dot_l = max(dot(n, l), 0.0);
    let n_dot_h = max(dot(n, h), 0.0);

    var power = 0.0;
    if (scene.params.x > 0.0 && n_dot_h > 0.0) {
        power = pow(n_dot_h, scene.params.x);
    }

    var color = scene.mat_ambient.rgb * light.ambient.rgb * atten;
    color += scene.mat_diffuse.rgb * light.diffuse.rgb * n_dot_l * atten;
    color += scene.mat_specular.rgb * light.specular.rgb * power * atten;
    return color;
}
`

// Tier 2: dynamic loop over up to 8 lights, one pass.
const shaderSceneTier2 = shaderSceneCommon + `
@fragment
fn fs_main(in: VsOut) -> @location(0) vec4<f32> {
    let n = normalize(in.normal);
    let v = normalize(scene.camera_pos.xyz - in.world_pos);

    var color = scene.mat_emissive.rgb + scene.global_ambient.rgb * scene.mat_ambient.rgb;
    let count = u32(scene.params.y);
    for (var i = 0u; i < count; i = i + 1u) {
        color += shade_light(i, in.world_pos, n, v);
    }

    let tex = textureSample(color_map, color_sampler, in.uv);
    return vec4<f32>(color, scene.mat_diffuse.a) * tex;
}
`

// Tier 1: the loop bound is a compile-time constant of 2, the way a
// low shader profile would unroll it.
const shaderSceneTier1 = shaderSceneCommon + `
@fragment
fn fs_main(in: VsOut) -> @location(0) vec4<f32> {
    let n = normalize(in.normal);
    let v = normalize(scene.camera_pos.xyz - in.world_pos);

    var color = scene.mat_emissive.rgb + scene.global_ambient.rgb * scene.mat_ambient.rgb;
    for (var i = 0u; i < 2u; i = i + 1u) {
        color += shade_light(i, in.world_pos, n, v);
    }

    let tex = textureSample(color_map, color_sampler, in.uv);
    return vec4<f32>(color, scene.mat_diffuse.a) * tex;
}
`

// Multi-pass base: emissive and global ambient terms only. The
// per-light passes are added on top.
const shaderSceneAmbient = shaderSceneCommon + `
@fragment
fn fs_main(in: VsOut) -> @location(0) vec4<f32> {
    let color = scene.mat_emissive.rgb + scene.global_ambient.rgb * scene.mat_ambient.rgb;
    let tex = textureSample(color_map, color_sampler, in.uv);
    return vec4<f32>(color, scene.mat_diffuse.a) * tex;
}
`

// Multi-pass light pass: exactly one light, selected by params.z,
// blended additively onto the base pass.
const shaderSceneOneLight = shaderSceneCommon + `
@fragment
fn fs_main(in: VsOut) -> @location(0) vec4<f32> {
    let n = normalize(in.normal);
    let v = normalize(scene.camera_pos.xyz - in.world_pos);

    let color = shade_light(u32(scene.params.z), in.world_pos, n, v);

    let tex = textureSample(color_map, color_sampler, in.uv);
    return vec4<f32>(color, scene.mat_diffuse.a) * tex;
}
`

// Screen-space text overlay. The atlas is white with glyph coverage
// in alpha.
const shaderOverlay = `
@group(0) @binding(0) var atlas: texture_2d<f32>;
@group(0) @binding(1) var atlas_sampler: sampler;

struct VsOut {
    @builtin(position) clip_pos: vec4<f32>,
    @location(0) uv: vec2<f32>,
    @location(1) color: vec4<f32>,
};

@vertex
fn vs_main(
    @location(0) pos: vec2<f32>,
    @location(1) uv: vec2<f32>,
    @location(2) color: vec4<f32>,
) -> VsOut {
    var out: VsOut;
    out.clip_pos = vec4<f32>(pos, 0.0, 1.0);
    out.uv = uv;
    out.color = color;
    return out;
}

@fragment
fn fs_main(in: VsOut) -> @location(0) vec4<f32> {
    let coverage = textureSample(atlas, atlas_sampler, in.uv).a;
    return vec4<f32>(in.color.rgb, in.color.a * coverage);
}
`
