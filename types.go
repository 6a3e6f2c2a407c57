package scryfall

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Color is a single Magic color, as used in colors and color identities.
type Color string

const (
	ColorWhite Color = "W"
	ColorBlue  Color = "U"
	ColorBlack Color = "B"
	ColorRed   Color = "R"
	ColorGreen Color = "G"
	// ColorColorless only shows up in mana symbols, never in card colors.
	ColorColorless Color = "C"
)

// Legality is the legality status of a card in a format.
type Legality string

const (
	Legal      Legality = "legal"
	NotLegal   Legality = "not_legal"
	Restricted Legality = "restricted"
	Banned     Legality = "banned"
)

// ImageVersion is the name of an image rendition in Card.ImageURIs.
type ImageVersion string

const (
	ImageSmall      ImageVersion = "small"
	ImageNormal     ImageVersion = "normal"
	ImageLarge      ImageVersion = "large"
	ImagePNG        ImageVersion = "png"
	ImageArtCrop    ImageVersion = "art_crop"
	ImageBorderCrop ImageVersion = "border_crop"
)

// ImageFace selects the side of a double-faced card.
type ImageFace string

const (
	FaceFront ImageFace = "front"
	FaceBack  ImageFace = "back"
)

const dateLayout = "2006-01-02"

// Date is a calendar date in the "YYYY-MM-DD" form used by Scryfall.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t

	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// FlexString holds values such as power, toughness or loyalty. They are
// usually sent as strings ("2", "*", "1+*", "X") but are accepted as JSON
// numbers as well; the textual form is always kept.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*f = FlexString(n.String())
	default:
		return fmt.Errorf("expected a string or a number, got %s", data)
	}

	return nil
}

func (f FlexString) String() string {
	return string(f)
}
