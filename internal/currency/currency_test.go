package currency

import (
	"testing"
	"unicode"
)

func TestTableShape(t *testing.T) {
	all := All()
	if len(all) != 16 {
		t.Fatalf("len(All()) = %d, expected 16", len(all))
	}

	seen := make(map[string]bool)
	for i, d := range all {
		if d.Code != Code(i) {
			t.Errorf("All()[%d].Code = %d, expected %d", i, d.Code, i)
		}
		if len(d.ISOCode) != 3 {
			t.Errorf("%s: ISO code length %d", d.Name, len(d.ISOCode))
		}
		if seen[d.ISOCode] {
			t.Errorf("duplicate ISO code %s", d.ISOCode)
		}
		seen[d.ISOCode] = true
		if d.Rate <= 0 {
			t.Errorf("%s: rate %d", d.ISOCode, d.Rate)
		}
		if d.Name == "" {
			t.Errorf("%s: empty name", d.ISOCode)
		}
	}
}

func TestSymbolsFitStorage(t *testing.T) {
	for _, d := range All() {
		for _, sym := range []string{d.UnicodeSymbol, d.ASCIISymbol} {
			if sym == "" {
				t.Errorf("%s: empty symbol", d.ISOCode)
			}
			if len(sym) >= SymbolMaxSize {
				t.Errorf("%s: symbol %q is %d bytes, max %d", d.ISOCode, sym, len(sym), SymbolMaxSize-1)
			}
		}
		for _, r := range d.ASCIISymbol {
			if r > unicode.MaxASCII {
				t.Errorf("%s: ASCII symbol %q contains %q", d.ISOCode, d.ASCIISymbol, r)
			}
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		iso      string
		expected Code
	}{
		{"GBP", Pounds},
		{"eur", Euros},
		{" cny ", Yuan},
		{"CZK", CzechKoruna},
	}

	for _, tt := range tests {
		d, ok := Lookup(tt.iso)
		if !ok {
			t.Errorf("Lookup(%q) not found", tt.iso)
			continue
		}
		if d.Code != tt.expected {
			t.Errorf("Lookup(%q).Code = %v, expected %v", tt.iso, d.Code, tt.expected)
		}
	}

	if _, ok := Lookup("XXX"); ok {
		t.Error("Lookup(XXX) expected not found")
	}
}

func TestSymbol(t *testing.T) {
	gbp := Get(Pounds)
	if sym, affix := gbp.Symbol(true); sym != "£" || affix != Prefix {
		t.Errorf("GBP Symbol(true) = %q %v, expected £ prefix", sym, affix)
	}
	if sym, affix := gbp.Symbol(false); sym != "GBP" || affix != Suffix {
		t.Errorf("GBP Symbol(false) = %q %v, expected GBP suffix", sym, affix)
	}

	czk := Get(CzechKoruna)
	if sym, _ := czk.Symbol(false); sym != " Kc" {
		t.Errorf("CZK Symbol(false) = %q, expected %q", sym, " Kc")
	}
}

func TestRates(t *testing.T) {
	tests := []struct {
		code     Code
		expected int
	}{
		{Pounds, 10},
		{Euros, 1},
		{Won, 10000},
		{Yen, 1000},
	}
	for _, tt := range tests {
		if got := Get(tt.code).Rate; got != tt.expected {
			t.Errorf("Get(%v).Rate = %d, expected %d", tt.code, got, tt.expected)
		}
	}
}

func TestGetPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Get(Count) expected panic")
		}
	}()
	Get(Count)
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].ISOCode = "ZZZ"
	if Get(Pounds).ISOCode != "GBP" {
		t.Error("All() exposed the backing table")
	}
}
