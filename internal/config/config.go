// internal/config/config.go
package config

import (
	"image/color"
	"math"
)

const (
	ScreenWidth   = 800
	ScreenHeight  = 400
	PixelsPerUnit = 5.0  // 1 м = 5 пикселей
	GroundOffset  = 20.0 // высота земли от нижнего края экрана
	LaunchScreenX = 20.0 // точка броска по X на экране
	MaxDeltaTime  = 0.06
	TickSeconds   = 1.0 / 60.0

	TextCharWidth = 7
	TextOffsetY   = 4
)

// Flight model, per tick unless stated otherwise.
const (
	Gravity           = 0.15
	AirResistance     = 0.96
	BaseSpeedPerPower = 0.6

	TrailCap        = 20
	SwingbyTrailCap = 30

	MinAngle   = 0.0
	MaxAngle   = 90.0
	MinPower   = 1.0
	MaxPower   = 10.0
	MinBalance = 1.0
	MaxBalance = 10.0

	DefaultAngle   = 30.0
	DefaultPower   = 5.0
	DefaultBalance = 5.0

	NeutralBalance   = 5.0
	NeutralBlurLimit = 1.99 // градусы, баланс 5
	AngleBlurScale   = 25.0
	PowerBlurMax     = 5.0
	BlurReportMin    = 1.0

	GlideMinBalance     = 7.0
	GlideMaxAngle       = 45.0
	GlideScale          = 0.15
	GlideSoftCap        = 0.13
	GlideCapKeepChance  = 0.08
	GlideResampleBase   = 0.12
	GlideResampleSpread = 0.01
	GlideReportAfter    = 1.0 // секунды

	FlightCeiling        = 60.0 // секунды
	SwingbyFlightCeiling = 30.0

	MinX = -14.0
	MaxX = 476.0
	MaxY = 96.0
)

// Secret triple and swingby geometry.
const (
	SecretAngle   = 77.0
	SecretPower   = 7.0
	SecretBalance = 7.0

	SwingbyRadiusX      = 15.0
	SwingbyRadiusY      = 8.0
	SwingbyTiltDegrees  = 40.0
	SwingbyAngularSpeed = 0.15 // рад/тик
	SwingbyRevolutions  = 2
	SwingbyBoost        = 1.5

	RelaunchAngle   = 45.0
	RelaunchPower   = 10.0
	RelaunchBalance = 1.0
)

// Overlay timings are in seconds of session time.
const (
	BirdMinDistance   = 60
	BirdMinHeight     = 50.0
	BirdProbability   = 0.3
	BirdDuration      = 5.0
	BirdApproachShare = 0.3
	BirdHoverHeight   = 6.0  // птица над самолётом
	BirdEntryOffset   = 10.0 // птица появляется правее экрана
	BirdEntryLift     = 10.0
	BirdAscent        = 40.0
	BirdSway          = 2.0
	BirdSwayRate      = 3.0 // рад/с
	BirdWingFlapRate  = 0.3 // рад/тик

	CrashMinDistance = 70
	CrashMaxDistance = 75
	CrashMaxHeight   = 10.0
	CrashDuration    = 3.0
	CrashRestHeight  = 2.0

	MoonDuration     = 7.0
	MoonLandingShare = 0.6
	MoonLandedShare  = 0.85
	MoonDistance     = 384400000.0
)

// Result message thresholds in metres.
const (
	DistancePoor      = 10
	DistanceFair      = 25
	DistanceGood      = 40
	DistanceExcellent = 60

	FrontHeavyComment = 3.0
	RearHeavyComment  = 7.0
)

// SwingbyTilt is the orbit tilt in radians.
var SwingbyTilt = SwingbyTiltDegrees * math.Pi / 180

var (
	SkyColor         = color.RGBA{135, 206, 235, 255}
	GroundColor      = color.RGBA{90, 160, 70, 255}
	TrailColor       = color.RGBA{255, 215, 0, 128}
	AirplaneColor    = color.RGBA{250, 250, 250, 255}
	AirplaneStroke   = color.RGBA{40, 40, 60, 255}
	SwingbyColor     = color.RGBA{255, 100, 100, 128}
	SwingbyRayColor  = color.RGBA{255, 150, 50, 110}
	BirdColor        = color.RGBA{139, 69, 19, 255}
	CrashColor       = color.RGBA{120, 72, 0, 255}
	NightColor       = color.RGBA{0, 4, 40, 255}
	MoonColor        = color.RGBA{245, 240, 200, 255}
	StarColor        = color.RGBA{255, 255, 255, 255}
	TextLightColor   = color.RGBA{240, 240, 240, 255}
	TextDarkColor    = color.RGBA{20, 20, 30, 255}
	PanelColor       = color.RGBA{20, 20, 30, 180}
	ButtonColor      = color.RGBA{76, 175, 80, 230}
	ButtonHoverColor = color.RGBA{69, 160, 73, 255}
	BannerColor      = color.RGBA{255, 107, 53, 230}
	StrokeWidth      = 2.0
	ZoneTints        = []color.RGBA{
		{173, 216, 230, 90}, // α
		{221, 160, 221, 90}, // β
	}
)
