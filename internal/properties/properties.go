package properties

import "os"

func RootPath() string {
	return os.Getenv("ROOT_PATH")
}

func CopernicusClientID() string {
	return os.Getenv("COPERNICUS_CLIENT_ID")
}

func CopernicusClientSecret() string {
	return os.Getenv("COPERNICUS_CLIENT_SECRET")
}

func CopernicusTokenURL() string {
	return os.Getenv("COPERNICUS_TOKEN_URL")
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}

func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}

type Color struct {
	R, G, B, A uint8
}

// ChangeColorMap is the legend of the multi-rule change raster, keyed
// by class name. PNG renders and GeoJSON exports share it so maps and
// tables agree.
var ChangeColorMap = map[string]Color{
	"no_change":       {0, 0, 0, 0},
	"urbanization":    {255, 0, 0, 255},
	"vegetation_loss": {255, 165, 0, 255},
	"vegetation_gain": {0, 255, 0, 255},
	"new_water":       {0, 0, 255, 255},
	"water_loss":      {0, 255, 255, 255},
}

// DiffColorMap is the legend of the signed differencing raster, keyed
// by code.
var DiffColorMap = map[int8]Color{
	-1: {255, 100, 100, 255},
	0:  {200, 200, 200, 128},
	1:  {100, 255, 100, 255},
}
