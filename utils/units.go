package utils

import "time"

func SiUnits(number float64, decimals int) string {
	if number >= 1000000000000 {
		return SprintfNoEscape("%.*f T", decimals, number/1000000000000)
	} else if number >= 1000000000 {
		return SprintfNoEscape("%.*f G", decimals, number/1000000000)
	} else if number >= 1000000 {
		return SprintfNoEscape("%.*f M", decimals, number/1000000)
	} else if number >= 1000 {
		return SprintfNoEscape("%.*f K", decimals, number/1000)
	}

	return SprintfNoEscape("%.*f ", decimals, number)
}

// HashRate formats a hashes-per-second figure for status lines
func HashRate(hashes uint64, elapsed time.Duration) string {
	if elapsed <= 0 {
		return SiUnits(0, 2) + "H/s"
	}
	return SiUnits(float64(hashes)/elapsed.Seconds(), 2) + "H/s"
}

func Uptime(elapsed time.Duration) string {
	s := uint64(elapsed.Seconds())
	return SprintfNoEscape("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}
