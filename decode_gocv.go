//go:build gocv

package asciify

import (
	"fmt"
	"image"
	"io"

	"gocv.io/x/gocv"
)

// GocvDecoder decodes with OpenCV's imdecode, which reads formats the pure
// Go decoders do not, such as JPEG 2000 and OpenEXR.
var GocvDecoder Decoder = DecoderFunc(decodeGocv)

func decodeGocv(r io.Reader) (image.Image, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	mat, err := gocv.IMDecode(buf, gocv.IMReadColor)
	if err != nil {
		return nil, err
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("opencv could not decode %d bytes", len(buf))
	}
	return mat.ToImage()
}
