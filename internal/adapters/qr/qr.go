// Package qr renders an employee's contact card as a scannable QR code image.
package qr

import (
	"context"
	"fmt"
	"image/png"
	"io"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"

	"github.com/csg33k/leave-panel/internal/domain"
)

// DefaultSize is the edge length in pixels when none is requested.
const DefaultSize = 500

// MaxSize bounds the requested edge length.
const MaxSize = 2000

// CardEncoder produces the text encoded into the code. *vcard.Encoder
// satisfies it.
type CardEncoder interface {
	Card(emp domain.EmployeeRecord) string
}

// Generator implements ports.ContactCodeRenderer.
type Generator struct {
	cards CardEncoder
	level qr.ErrorCorrectionLevel
}

func New(cards CardEncoder) *Generator {
	return &Generator{cards: cards, level: qr.M}
}

func (g *Generator) ContentType() string { return "image/png" }

// Render writes a size×size PNG of the employee's card. size <= 0 means
// DefaultSize. A size above MaxSize or below the code's module count fails
// with domain.ErrCodeSize.
func (g *Generator) Render(ctx context.Context, emp domain.EmployeeRecord, size int, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		return fmt.Errorf("%w: %d px exceeds %d", domain.ErrCodeSize, size, MaxSize)
	}
	code, err := qr.Encode(g.cards.Card(emp), g.level, qr.Auto)
	if err != nil {
		return fmt.Errorf("encode qr for employee %d: %w", emp.ID, err)
	}
	if modules := code.Bounds().Dx(); size < modules {
		return fmt.Errorf("%w: %d px for %d modules", domain.ErrCodeSize, size, modules)
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return fmt.Errorf("scale qr: %w", err)
	}
	return png.Encode(w, scaled)
}
