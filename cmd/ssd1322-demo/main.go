// Command ssd1322-demo drives an SSD1322 OLED panel over SPI and renders a
// short demo animation. With -preview the framebuffer is also mirrored to
// the terminal using ANSI colors, which helps when wiring up a new panel.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"math"
	"os"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/oledkit/ssd1322"
	"github.com/oledkit/ssd1322/draw"
	"github.com/oledkit/ssd1322/pixel"
)

func main() {
	var (
		spiFlag      = flag.String("spi", "", "SPI port (default: first available)")
		dcPinFlag    = flag.String("dc", "GPIO24", "data/command GPIO pin")
		resetPinFlag = flag.String("reset", "GPIO25", "reset GPIO pin")
		powerPinFlag = flag.String("power", "", "panel power enable GPIO pin (optional)")
		widthFlag    = flag.Int("width", 256, "display width")
		heightFlag   = flag.Int("height", 64, "display height")
		rotateFlag   = flag.String("rotate", "0", "display rotation (0, 90, 180, 270)")
		contrastFlag = flag.Uint("contrast", 0x7F, "contrast current")
		invertFlag   = flag.Bool("invert", false, "invert gray levels")
		textFlag     = flag.String("text", "SSD1322", "text to display")
		framesFlag   = flag.Int("frames", 300, "number of animation frames")
		previewFlag  = flag.Bool("preview", false, "mirror the framebuffer to the terminal")
		debugFlag    = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*debugFlag {
		log = log.Level(zerolog.InfoLevel)
	}

	var rotation pixel.Rotation
	switch *rotateFlag {
	case "", "0":
		rotation = pixel.NoRotation
	case "90":
		rotation = pixel.Rotate90
	case "180":
		rotation = pixel.Rotate180
	case "270":
		rotation = pixel.Rotate270
	default:
		log.Fatal().Str("rotate", *rotateFlag).Msg("invalid rotation")
	}

	if _, err := host.Init(); err != nil {
		log.Fatal().Err(err).Msg("host init failed")
	}

	port, err := spireg.Open(*spiFlag)
	if err != nil {
		log.Fatal().Err(err).Str("port", *spiFlag).Msg("cannot open SPI port")
	}

	config := &ssd1322.SPIConfig{
		Speed:     ssd1322.DefaultSPIConfig.Speed,
		BatchSize: ssd1322.DefaultSPIConfig.BatchSize,
		DC:        gpioreg.ByName(*dcPinFlag),
		Reset:     gpioreg.ByName(*resetPinFlag),
	}
	if *powerPinFlag != "" {
		config.Power = gpioreg.ByName(*powerPinFlag)
	}

	conn, err := ssd1322.OpenSPI(port, config)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open display connection")
	}

	display, err := ssd1322.New(conn, &ssd1322.Config{
		Width:    *widthFlag,
		Height:   *heightFlag,
		Rotation: rotation,
		Contrast: uint8(*contrastFlag),
		Inverted: *invertFlag,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("cannot configure display")
	}
	defer func() {
		if err := display.Close(); err != nil {
			log.Error().Err(err).Msg("close failed")
		}
	}()

	log.Info().Stringer("display", display).Msg("initializing")
	if err = display.Init(); err != nil {
		log.Fatal().Err(err).Msg("display init failed")
	}

	img, err := display.NewImage()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot allocate framebuffer")
	}

	bounds := display.Bounds()
	start := time.Now()
	for frame := 0; frame < *framesFlag; frame++ {
		render(img, bounds, *textFlag, frame)
		if err = display.Flush(img); err != nil {
			log.Fatal().Err(err).Int("frame", frame).Msg("flush failed")
		}
		if *previewFlag {
			preview(img)
		}
	}

	elapsed := time.Since(start)
	log.Info().
		Int("frames", *framesFlag).
		Dur("elapsed", elapsed).
		Float64("fps", float64(*framesFlag)/elapsed.Seconds()).
		Msg("done")
}

// render draws one animation frame: a sine wave swept by the frame counter,
// a border and a text label, anti-aliased by gg and quantized to 4-bit gray
// by the framebuffer's color model.
func render(img *pixel.Gray4Image, bounds image.Rectangle, text string, frame int) {
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	dc := gg.NewContext(bounds.Dx(), bounds.Dy())

	dc.SetRGB(0, 0, 0)
	dc.Clear()

	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(1.5)
	phase := float64(frame) * 0.1
	for x := 0.0; x < w; x++ {
		y := h/2 + math.Sin(x/w*4*math.Pi+phase)*h/3
		if x == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()

	img.Clear()
	stddraw.Draw(img, bounds, dc.Image(), image.Point{}, stddraw.Src)

	draw.Rectangle(img, bounds, pixel.Gray4{Y: 0x8})
	draw.Text(img, image.Pt(4, 12), color.White, nil, text)
}

// preview writes the framebuffer to the terminal, one block per pixel pair
// to keep the aspect ratio roughly square.
func preview(img *pixel.Gray4Image) {
	out := colorable.NewColorableStdout()
	bounds := img.Bounds()

	var sb strings.Builder
	sb.WriteString("\033[H\033[2J")
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a, _ := img.Level(x, y)
			b, _ := img.Level(x, y+1)
			v := uint8((uint16(a) + uint16(b)) / 2 * 0x11)
			sb.WriteString(ansi256.Default.Block(color.NRGBA{R: v, G: v, B: v, A: 255}))
		}
		sb.WriteString("\033[0m\n")
	}
	fmt.Fprint(out, sb.String())
}
