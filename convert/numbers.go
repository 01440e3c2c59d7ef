package convert

import (
	"math"
)

func TwoDecimals(number float64) float64 {
	return RoundFloat64(number, 2)
}

func RoundFloat64(number float64, decimals int) float64 {
	return math.Round(number*math.Pow10(decimals)) / math.Pow10(decimals)
}

// Ore converts SEK to öre.
func Ore(sek float64) float64 {
	return sek * 100
}

// PerMWhToPerKWh converts a price per MWh to a price per kWh, rounded to four decimals.
func PerMWhToPerKWh(price float64) float64 {
	return RoundFloat64(price/1e3, 4)
}
