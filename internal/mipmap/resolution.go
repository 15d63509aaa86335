package mipmap

// Resolution is one Android launcher icon density bucket
type Resolution struct {
	Label  string
	Width  int
	Height int
}

// resolutions must match the Android res/ directory names exactly
var resolutions = [...]Resolution{
	{Label: "mipmap-mdpi", Width: 48, Height: 48},
	{Label: "mipmap-hdpi", Width: 72, Height: 72},
	{Label: "mipmap-xhdpi", Width: 96, Height: 96},
	{Label: "mipmap-xxhdpi", Width: 144, Height: 144},
	{Label: "mipmap-xxxhdpi", Width: 192, Height: 192},
}

// Resolutions returns a copy of the fixed density table in ascending order
func Resolutions() []Resolution {
	out := make([]Resolution, len(resolutions))
	copy(out, resolutions[:])
	return out
}
