package render

import (
	"encoding/base64"
	"errors"
	"image/color"
	"testing"
)

func encodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func TestDecodeDataURL(t *testing.T) {
	payload := []byte("logo-bytes")
	enc := encodeBase64(payload)
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "data url", in: "data:image/png;base64," + enc},
		{name: "upper case header", in: "DATA:image/png;BASE64," + enc},
		{name: "bare base64", in: enc},
		{name: "unpadded", in: "data:image/png;base64," + base64.RawStdEncoding.EncodeToString(payload)},
		{name: "no comma", in: "data:image/png;base64", wantErr: true},
		{name: "not base64", in: "data:image/svg+xml,<svg/>", wantErr: true},
		{name: "garbage", in: "data:image/png;base64,@@@", wantErr: true},
		{name: "empty payload", in: "data:image/png;base64,", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeDataURL(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeDataURL: %v", err)
			}
			if string(got) != string(payload) {
				t.Fatalf("payload = %q", got)
			}
		})
	}
}

func TestPrepareLogoContainsInBox(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		inside [2]int
		empty  [2]int
	}{
		{name: "wide", w: 400, h: 100, inside: [2]int{5, 70}, empty: [2]int{70, 5}},
		{name: "tall", w: 30, h: 60, inside: [2]int{70, 5}, empty: [2]int{5, 70}},
		{name: "tiny square upscales", w: 10, h: 10, inside: [2]int{2, 137}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			img, err := prepareLogo(pngBytes(t, tc.w, tc.h, color.NRGBA{B: 0xff, A: 0xff}))
			if err != nil {
				t.Fatalf("prepareLogo: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 140 || b.Dy() != 140 {
				t.Fatalf("logo box is %dx%d", b.Dx(), b.Dy())
			}
			if _, _, _, a := img.At(tc.inside[0], tc.inside[1]).RGBA(); a == 0 {
				t.Fatalf("pixel %v should be covered", tc.inside)
			}
			if tc.empty != [2]int{} {
				if _, _, _, a := img.At(tc.empty[0], tc.empty[1]).RGBA(); a != 0 {
					t.Fatalf("pixel %v should be transparent", tc.empty)
				}
			}
		})
	}
}

func TestPrepareLogoRejectsGarbage(t *testing.T) {
	if _, err := prepareLogo([]byte("<svg/>")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestPrepareLogoRejectsOversizedDimensions(t *testing.T) {
	if _, err := prepareLogo(oversizedPNG(t, 5000, 5000)); !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
}
