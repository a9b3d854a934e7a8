package strx

// Coalesce returns s if non-empty, otherwise d.
func Coalesce(s, d string) string {
	if s == "" {
		return d
	}
	return s
}

// PadTo truncates or space-pads s to exactly w runes.
func PadTo(s string, w int) string {
	r := []rune(s)
	if len(r) >= w {
		return string(r[:w])
	}
	out := make([]rune, w)
	copy(out, r)
	for i := len(r); i < w; i++ {
		out[i] = ' '
	}
	return string(out)
}
