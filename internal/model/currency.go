package model

// CurrencyKey identifies a synth, e.g. "sETH".
type CurrencyKey string

// SUSD is the stable unit every synth price is quoted against.
const SUSD CurrencyKey = "sUSD"

func (k CurrencyKey) IsReferenceUnit() bool { return k == SUSD }

func (k CurrencyKey) String() string { return string(k) }
