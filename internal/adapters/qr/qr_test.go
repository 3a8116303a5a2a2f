package qr_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/boombuler/barcode"
	bqr "github.com/boombuler/barcode/qr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/leave-panel/internal/adapters/qr"
	"github.com/csg33k/leave-panel/internal/adapters/vcard"
	"github.com/csg33k/leave-panel/internal/domain"
)

var ann = domain.EmployeeRecord{
	ID: 42, FirstName: "Ann", LastName: "Lee", Title: "Engineer",
	Email: "a@x.com", Phone: "555-1234",
}

func render(t *testing.T, size int) image.Image {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, qr.New(vcard.New("")).Render(context.Background(), ann, size, &buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	return img
}

func TestRender_Sizes(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int
	}{
		{"default", 0, qr.DefaultSize},
		{"negative means default", -5, qr.DefaultSize},
		{"explicit", 300, 300},
		{"not a module multiple", 333, 333},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := render(t, tt.size).Bounds()
			assert.Equal(t, tt.want, b.Dx())
			assert.Equal(t, tt.want, b.Dy())
		})
	}
}

func TestRender_EncodesVCard(t *testing.T) {
	card := vcard.New("").Card(ann)
	code, err := bqr.Encode(card, bqr.M, bqr.Auto)
	require.NoError(t, err)
	want, err := barcode.Scale(code, 400, 400)
	require.NoError(t, err)

	got := render(t, 400)
	for y := 0; y < 400; y += 7 {
		for x := 0; x < 400; x += 7 {
			wr, _, _, _ := want.At(x, y).RGBA()
			gr, _, _, _ := got.At(x, y).RGBA()
			if wr != gr {
				t.Fatalf("pixel (%d,%d) differs from the encoded vCard", x, y)
			}
		}
	}
}

func TestRender_TooSmall(t *testing.T) {
	var buf bytes.Buffer
	err := qr.New(vcard.New("")).Render(context.Background(), ann, 10, &buf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCodeSize))
	assert.Zero(t, buf.Len())
}

func TestRender_TooLarge(t *testing.T) {
	var buf bytes.Buffer
	err := qr.New(vcard.New("")).Render(context.Background(), ann, qr.MaxSize+1, &buf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCodeSize))
	assert.Zero(t, buf.Len())
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	err := qr.New(vcard.New("")).Render(ctx, ann, 0, &buf)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", qr.New(vcard.New("")).ContentType())
}
