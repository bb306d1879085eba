// Package currency holds the table of currencies a park can display
// prices in. It only describes each currency; it does not convert or
// format amounts.
package currency

import (
	"fmt"
	"strings"
)

// Code identifies a currency in the table.
type Code uint8

const (
	Pounds Code = iota
	Dollars
	Franc
	Deutschmark
	Yen
	Peseta
	Lira
	Guilders
	Krona
	Euros
	Won
	Rouble
	CzechKoruna
	HKD
	TWD
	Yuan

	// Count is the number of currencies.
	Count
)

// SymbolMaxSize is the symbol storage size in bytes, terminator included.
const SymbolMaxSize = 8

// Affix says on which side of the amount a symbol is written.
type Affix uint8

const (
	Prefix Affix = iota
	Suffix
)

func (a Affix) String() string {
	if a == Suffix {
		return "suffix"
	}
	return "prefix"
}

// Descriptor describes one currency.
type Descriptor struct {
	Code    Code
	ISOCode string
	// Rate is relative to 0.10 GBP.
	Rate          int
	UnicodeAffix  Affix
	UnicodeSymbol string
	ASCIIAffix    Affix
	ASCIISymbol   string
	Name          string
}

var descriptors = [Count]Descriptor{
	{Pounds, "GBP", 10, Prefix, "£", Suffix, "GBP", "British Pound"},
	{Dollars, "USD", 10, Prefix, "$", Prefix, "$", "US Dollar"},
	{Franc, "FRF", 10, Suffix, "F", Suffix, "F", "French Franc"},
	{Deutschmark, "DEM", 10, Prefix, "DM", Prefix, "DM", "Deutsche Mark"},
	{Yen, "JPY", 1000, Prefix, "¥", Suffix, "YEN", "Japanese Yen"},
	{Peseta, "ESP", 10, Suffix, "Pts", Suffix, "Pts", "Spanish Peseta"},
	{Lira, "ITL", 1000, Prefix, "L", Prefix, "L", "Italian Lira"},
	{Guilders, "NLG", 10, Prefix, "ƒ ", Prefix, "fl.", "Dutch Guilder"},
	{Krona, "SEK", 100, Suffix, " kr", Suffix, " kr", "Swedish Krona"},
	{Euros, "EUR", 1, Prefix, "€", Suffix, "EUR", "Euro"},
	{Won, "KRW", 10000, Prefix, "₩", Prefix, "W", "South Korean Won"},
	{Rouble, "RUB", 1000, Prefix, "R ", Prefix, "R ", "Russian Rouble"},
	{CzechKoruna, "CZK", 100, Suffix, " Kč", Suffix, " Kc", "Czech Koruna"},
	{HKD, "HKD", 100, Prefix, "$", Prefix, "HKD", "Hong Kong Dollar"},
	{TWD, "TWD", 1000, Prefix, "NT$", Prefix, "NT$", "New Taiwan Dollar"},
	{Yuan, "CNY", 100, Prefix, "CN¥", Prefix, "CNY", "Chinese Yuan"},
}

// Get returns the descriptor for c. It panics on an unknown code.
func Get(c Code) Descriptor {
	if c >= Count {
		panic(fmt.Sprintf("currency: code %d out of range", c))
	}
	return descriptors[c]
}

// All returns every descriptor in code order.
func All() []Descriptor {
	out := make([]Descriptor, Count)
	copy(out, descriptors[:])
	return out
}

// Lookup finds a currency by ISO 4217 code, ignoring case.
func Lookup(iso string) (Descriptor, bool) {
	iso = strings.ToUpper(strings.TrimSpace(iso))
	for _, d := range descriptors {
		if d.ISOCode == iso {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Symbol returns the symbol and its affix for Unicode or ASCII-only text.
func (d Descriptor) Symbol(unicode bool) (string, Affix) {
	if unicode {
		return d.UnicodeSymbol, d.UnicodeAffix
	}
	return d.ASCIISymbol, d.ASCIIAffix
}

func (c Code) String() string {
	if c >= Count {
		return fmt.Sprintf("Code(%d)", c)
	}
	return descriptors[c].ISOCode
}
