package lantern

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/google/uuid"
)

type AssetId string

type TextureAsset struct {
	texels []uint8 // RGBA8
	width  uint32
	height uint32
}

// AssetServer owns decoded texture data. A 2x2 white texture is
// always present and stands in whenever color maps are disabled or a
// file fails to load.
type AssetServer struct {
	textures map[AssetId]TextureAsset
	white    AssetId
}

type AssetServerModule struct{}

func (AssetServerModule) Install(app *App, cmd *Commands) error {
	server := &AssetServer{
		textures: make(map[AssetId]TextureAsset),
	}
	server.white = server.CreateTexture([]uint8{
		255, 255, 255, 255, 255, 255, 255, 255,
		255, 255, 255, 255, 255, 255, 255, 255,
	}, 2, 2)

	cmd.AddResources(server)
	return nil
}

func (server *AssetServer) CreateTexture(texels []uint8, width, height uint32) AssetId {
	id := makeAssetId()
	server.textures[id] = TextureAsset{
		texels: texels,
		width:  width,
		height: height,
	}
	return id
}

// LoadTexture decodes a JPEG or PNG file into an RGBA texture asset.
func (server *AssetServer) LoadTexture(filename string) (AssetId, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("open texture %s: %w", filename, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("decode texture %s: %w", filename, err)
	}

	bounds := img.Bounds()
	rgbaImg, ok := img.(*image.RGBA)
	if !ok {
		rgbaImg = image.NewRGBA(bounds)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				rgbaImg.Set(x, y, img.At(x, y))
			}
		}
	}

	return server.CreateTexture(
		rgbaImg.Pix,
		uint32(bounds.Dx()),
		uint32(bounds.Dy()),
	), nil
}

func (server *AssetServer) WhiteTexture() AssetId { return server.white }

func (server *AssetServer) Texture(id AssetId) (TextureAsset, bool) {
	asset, ok := server.textures[id]
	return asset, ok
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
