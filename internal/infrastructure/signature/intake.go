// Package signature implementa la recepción de la imagen de firma: lectura acotada,
// detección del tipo por contenido y vista previa como data URI.
package signature

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // registro de decodificador
	_ "image/jpeg" // registro de decodificador
	"image/png"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"  // registro de decodificador
	_ "golang.org/x/image/webp" // registro de decodificador

	"github.com/jhoicas/invoice-generator/internal/domain"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
)

// Intake lee imágenes de firma con un tamaño máximo.
type Intake struct {
	maxBytes int
}

// NewIntake construye el lector con el límite indicado (bytes).
func NewIntake(maxBytes int) *Intake {
	return &Intake{maxBytes: maxBytes}
}

// Read lee r por completo y devuelve la firma lista para asignar al borrador.
// Cualquier falla devuelve error envolviendo domain.ErrInvalidImage y ninguna firma.
func (in *Intake) Read(r io.Reader, fileName string) (*entity.SignatureImage, error) {
	data, err := io.ReadAll(io.LimitReader(r, int64(in.maxBytes)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: lectura: %v", domain.ErrInvalidImage, err)
	}
	if len(data) > in.maxBytes {
		return nil, fmt.Errorf("%w: supera %d bytes", domain.ErrInvalidImage, in.maxBytes)
	}
	return in.FromBytes(data, fileName)
}

// FromBytes verifica que data sea una imagen decodificable.
func (in *Intake) FromBytes(data []byte, fileName string) (*entity.SignatureImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidImage)
	}
	if len(data) > in.maxBytes {
		return nil, fmt.Errorf("%w: supera %d bytes", domain.ErrInvalidImage, in.maxBytes)
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("%w: tipo %s", domain.ErrInvalidImage, mt.String())
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %s no decodificable: %v", domain.ErrInvalidImage, mt.String(), err)
	}
	return &entity.SignatureImage{
		Data:       data,
		MIMEType:   mt.String(),
		FileName:   fileName,
		PreviewURI: DataURI(mt.String(), data),
	}, nil
}

// FromDataURI decodifica un data URI en base64 ("data:image/png;base64,...").
func (in *Intake) FromDataURI(uri string) (*entity.SignatureImage, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, fmt.Errorf("%w: no es un data URI", domain.ErrInvalidImage)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%w: data URI sin base64", domain.ErrInvalidImage)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", domain.ErrInvalidImage, err)
	}
	return in.FromBytes(data, "")
}

// DataURI representación mostrable de la imagen.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Decode decodifica la firma en cualquiera de los formatos aceptados.
func Decode(sig *entity.SignatureImage) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(sig.Data))
	if err != nil {
		return nil, fmt.Errorf("decodificar firma: %w", err)
	}
	return img, nil
}

// AsPNG devuelve la firma como PNG (los generadores de PDF solo aceptan PNG/JPEG).
func AsPNG(sig *entity.SignatureImage) ([]byte, error) {
	if sig.MIMEType == "image/png" {
		return sig.Data, nil
	}
	img, err := Decode(sig)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("codificar firma PNG: %w", err)
	}
	return buf.Bytes(), nil
}
