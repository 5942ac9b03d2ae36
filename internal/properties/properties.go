package properties

import (
	"os"
	"path/filepath"
)

func RootPath() string {
	return os.Getenv("ROOT_PATH")
}

// DataPath joins elements under ROOT_PATH/data.
func DataPath(elem ...string) string {
	return filepath.Join(append([]string{RootPath(), "data"}, elem...)...)
}

func LogLevel() string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "info"
}

type Color struct {
	R, G, B uint8
}

// ClassColors maps pixel-level forest class codes to preview colours.
var ClassColors = map[int32]Color{
	11: {166, 206, 57},
	12: {51, 160, 44},
	13: {178, 223, 138},
	14: {255, 255, 153},
	15: {116, 196, 118},
	16: {199, 233, 192},
	21: {31, 120, 180},
	22: {166, 206, 227},
	23: {106, 61, 154},
	24: {202, 178, 214},
	25: {253, 191, 111},
	26: {255, 127, 0},
	27: {251, 154, 153},
	28: {227, 26, 28},
	29: {177, 89, 40},
}

// UnknownColor is used for labels without an entry in ClassColors.
var UnknownColor = Color{255, 0, 0}

func ClassColor(label int32) Color {
	if c, ok := ClassColors[label]; ok {
		return c
	}
	return UnknownColor
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}

func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}
