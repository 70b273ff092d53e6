// Package imagedata decodes base64 data URIs sent by clients and reads
// the EXIF GPS position embedded in photos.
package imagedata

import (
	"bytes"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"railspace_backend/platform/geo"

	"github.com/rwcarlsen/goexif/exif"
)

// MaxBytes caps decoded image size.
const MaxBytes = 8 << 20

var (
	ErrNotDataURI  = errors.New("expected a base64 data URI")
	ErrNotImage    = errors.New("data URI is not an image")
	ErrTooLarge    = errors.New("image exceeds size limit")
	ErrNoGPSTags   = errors.New("image carries no GPS position")
	errBadEncoding = errors.New("invalid base64 payload")
)

// Image is a decoded inline image.
type Image struct {
	MIMEType string
	Data     []byte
}

// ParseDataURI decodes "data:<mimetype>;base64,<payload>". The declared type
// must be an image type and must agree with the sniffed content type.
func ParseDataURI(uri string) (Image, error) {
	uri = strings.TrimSpace(uri)
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return Image{}, ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Image{}, ErrNotDataURI
	}
	mimeType, encoding, ok := strings.Cut(meta, ";")
	if !ok || !strings.EqualFold(encoding, "base64") {
		return Image{}, ErrNotDataURI
	}
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if !strings.HasPrefix(mimeType, "image/") {
		return Image{}, ErrNotImage
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxBytes {
		return Image{}, ErrTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, errBadEncoding
	}
	if sniffed := http.DetectContentType(data); !strings.HasPrefix(sniffed, "image/") {
		return Image{}, ErrNotImage
	}

	return Image{MIMEType: mimeType, Data: data}, nil
}

// GPS returns the position recorded in the image's EXIF block.
func (img Image) GPS() (geo.Point, error) {
	x, err := exif.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return geo.Point{}, ErrNoGPSTags
	}
	lat, lng, err := x.LatLong()
	if err != nil {
		return geo.Point{}, ErrNoGPSTags
	}
	p := geo.Point{Lat: lat, Lng: lng}
	if !p.Valid() {
		return geo.Point{}, ErrNoGPSTags
	}
	return p, nil
}
