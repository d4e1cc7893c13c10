package deposit

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestNewAddress_Prefixes(t *testing.T) {
	cases := map[string]string{
		"bitcoin":  "bc1",
		"erc20":    "0x",
		"arbitrum": "0x",
		"trc20":    "T",
	}
	for network, prefix := range cases {
		addr, err := NewAddress(network)
		if err != nil {
			t.Fatalf("%s: %v", network, err)
		}
		if !strings.HasPrefix(addr, prefix) {
			t.Errorf("%s address %q lacks prefix %q", network, addr, prefix)
		}
		if len(addr) < 20 {
			t.Errorf("%s address %q suspiciously short", network, addr)
		}
	}
}

func TestNewAddress_Unique(t *testing.T) {
	a, err := NewAddress("bitcoin")
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewAddress("bitcoin")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("two generated addresses are identical")
	}
}

func TestQRCode_DecodablePNG(t *testing.T) {
	encoded, err := QRCode("bc1example")
	if err != nil {
		t.Fatal(err)
	}
	png, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Fatal("output is not a PNG")
	}
}
