package scryfall

import (
	"context"
	"image"

	"github.com/google/uuid"
)

var imageVersions = map[ImageVersion]bool{
	ImageSmall:      true,
	ImageNormal:     true,
	ImageLarge:      true,
	ImagePNG:        true,
	ImageArtCrop:    true,
	ImageBorderCrop: true,
}

type imageParams struct {
	Format  string       `url:"format"`
	Version ImageVersion `url:"version,omitempty"`
	Face    ImageFace    `url:"face,omitempty"`
}

// CardImage downloads the image of a card. Scryfall answers with a redirect
// to its image CDN, which the HTTP client follows.
type CardImage struct {
	ID uuid.UUID
	// Version defaults to ImageLarge.
	Version ImageVersion
	// Face is only meaningful for double-faced cards.
	Face ImageFace
}

func (r CardImage) target() (string, error) {
	params := imageParams{Format: "image", Version: r.Version, Face: r.Face}
	if params.Version == "" {
		params.Version = ImageLarge
	}
	if !imageVersions[params.Version] {
		return "", &EncodeError{Field: "version", Value: string(params.Version)}
	}
	if params.Face != "" && params.Face != FaceFront && params.Face != FaceBack {
		return "", &EncodeError{Field: "face", Value: string(params.Face)}
	}

	q, err := encodeOptions(params)
	if err != nil {
		return "", err
	}

	return withQuery(endpoint("cards", r.ID.String()), q), nil
}

func (CardImage) decode(body []byte) (image.Image, error) {
	return decodeImage(body)
}

// CardImage downloads and decodes the image of a card.
func (c *Client) CardImage(ctx context.Context, id uuid.UUID, version ImageVersion, face ImageFace) (image.Image, error) {
	return Execute[image.Image](ctx, c, CardImage{ID: id, Version: version, Face: face})
}
