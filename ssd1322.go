package ssd1322

import (
	"fmt"
	"image"
	"time"

	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3/gpio"

	"github.com/oledkit/ssd1322/pixel"
)

const (
	defaultWidth      = 256
	defaultHeight     = 64
	defaultContrast   = 0x7F
	defaultResetDelay = time.Millisecond
)

// supportedSizes are the panel geometries the controller can drive. The
// controller RAM is 480x128; common panels use a subset of it.
var supportedSizes = []image.Point{
	image.Pt(480, 128),
	image.Pt(256, 64),
	image.Pt(256, 48),
	image.Pt(256, 32),
	image.Pt(128, 64),
	image.Pt(128, 48),
	image.Pt(128, 32),
	image.Pt(64, 64),
	image.Pt(64, 48),
	image.Pt(64, 32),
}

// Config is the display configuration.
type Config struct {
	// Width and Height are the panel dimensions in pixels, before rotation.
	// Zero values select a 256x64 panel.
	Width  int
	Height int

	// Rotation orients the drawing surface relative to the panel.
	Rotation pixel.Rotation

	// Contrast is the initial contrast current, zero selects the default.
	Contrast uint8

	// Inverted displays the framebuffer with inverted gray levels.
	Inverted bool

	// ResetDelay is the time the reset line is held at each level during
	// the power on sequence, zero selects the default.
	ResetDelay time.Duration

	// Clock is used for reset timing, nil selects the wall clock.
	Clock clockwork.Clock
}

// Display is a driver for the Solomon Systech SSD1322 OLED controller.
type Display struct {
	c          Conn
	clock      clockwork.Clock
	width      int
	height     int
	rotation   pixel.Rotation
	contrast   uint8
	inverted   bool
	resetDelay time.Duration
}

// New prepares a driver for a panel attached on conn. No bus traffic happens
// until Init is called.
func New(conn Conn, config *Config) (*Display, error) {
	if config == nil {
		config = new(Config)
	}

	width, height := config.Width, config.Height
	if width == 0 {
		width = defaultWidth
	}
	if height == 0 {
		height = defaultHeight
	}

	var supported bool
	for _, size := range supportedSizes {
		if supported = size.X == width && size.Y == height; supported {
			break
		}
	}
	if !supported {
		return nil, fmt.Errorf("%w: %dx%d", ErrUnsupportedSize, width, height)
	}

	contrast := config.Contrast
	if contrast == 0 {
		contrast = defaultContrast
	}
	resetDelay := config.ResetDelay
	if resetDelay == 0 {
		resetDelay = defaultResetDelay
	}
	clock := config.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Display{
		c:          conn,
		clock:      clock,
		width:      width,
		height:     height,
		rotation:   config.Rotation,
		contrast:   contrast,
		inverted:   config.Inverted,
		resetDelay: resetDelay,
	}, nil
}

func (d *Display) String() string {
	return fmt.Sprintf("SSD1322 %dx%d on %s", d.width, d.height, d.c)
}

// Bounds is the drawing surface rectangle, after rotation.
func (d *Display) Bounds() image.Rectangle {
	if d.rotation.Swapped() {
		return image.Rect(0, 0, d.height, d.width)
	}
	return image.Rect(0, 0, d.width, d.height)
}

// NewImage allocates a framebuffer matching the display geometry and
// rotation, ready to be drawn on and passed to Flush.
func (d *Display) NewImage() (*pixel.Gray4Image, error) {
	return pixel.NewGray4Image(d.width, d.height, d.rotation)
}

func (d *Display) send(cmds ...command) error {
	for _, cmd := range cmds {
		if err := d.c.Command(cmd.opcode, cmd.params()...); err != nil {
			return err
		}
	}
	return nil
}

// remapForRotation maps a rotation onto the remap command. Quarter turns
// have no hardware equivalent on this controller; they are handled in the
// framebuffer, so 90 degrees shares the 0 degree remap and 270 shares 180.
func remapForRotation(rotation pixel.Rotation) command {
	switch rotation {
	case pixel.Rotate180, pixel.Rotate270:
		return setRemap(incrementHorizontal, columnReverse, nibbleForward, scanRowZeroFirst, layoutDualProgressive)
	default:
		return setRemap(incrementHorizontal, columnForward, nibbleForward, scanRowZeroLast, layoutDualProgressive)
	}
}

func (d *Display) mode() displayMode {
	if d.inverted {
		return modeInverse
	}
	return modeNormal
}

// Init runs the power on sequence and programs the controller registers.
// Calling Init again reruns the full sequence, restoring a known state.
func (d *Display) Init() error {
	if err := d.c.Power(gpio.High); err != nil {
		return err
	}
	d.clock.Sleep(d.resetDelay)
	if err := d.c.Reset(gpio.Low); err != nil {
		return err
	}
	d.clock.Sleep(d.resetDelay)
	if err := d.c.Reset(gpio.High); err != nil {
		return err
	}
	d.clock.Sleep(d.resetDelay)

	return d.send(
		setCommandLock(false),
		setSleep(true),
		setClock(0xF, 0x2),
		setMultiplexRatio(uint8(d.height)),
		setDisplayOffset(0),
		setStartLine(0),
		remapForRotation(d.rotation),
		setGPIO(0),
		setFunction(true),
		setDisplayEnhancementA(true, true),
		setDisplayEnhancementB(),
		setContrastCurrent(d.contrast),
		setMasterContrast(0xF),
		setDefaultGrayscale(),
		setPhaseLengths(5, 15),
		setPrechargeVoltage(31),
		setVCOMH(7),
		setDisplayMode(d.mode()),
		setSecondPrecharge(8),
		exitPartialDisplay(),
		setSleep(false),
	)
}

// Flush sends the whole framebuffer to the display. The image geometry must
// match the display geometry.
func (d *Display) Flush(img *pixel.Gray4Image) error {
	if img.Rotation() != d.rotation {
		return ErrBufferSize
	}
	pix := img.Bytes()
	if len(pix) != d.width/2*d.height {
		return ErrBufferSize
	}
	if err := d.send(
		setColumnWindow(0, uint8(d.width/2-1)),
		setRowWindow(0, uint8(d.height-1)),
		writeRAM(),
	); err != nil {
		return err
	}
	return d.c.Data(pix...)
}

// WriteWindow sends packed pixel data for the rectangle r, in panel
// coordinates before rotation. The horizontal extent must be aligned to the
// two pixel RAM columns, so r.Min.X and r.Dx() must be even.
func (d *Display) WriteWindow(pix []byte, r image.Rectangle) error {
	if !r.In(image.Rect(0, 0, d.width, d.height)) || r.Empty() {
		return ErrBounds
	}
	if r.Min.X%2 != 0 || r.Dx()%2 != 0 {
		return ErrBounds
	}
	if len(pix) != r.Dx()/2*r.Dy() {
		return ErrBufferSize
	}
	if err := d.send(
		setColumnWindow(uint8(r.Min.X/2), uint8(r.Max.X/2-1)),
		setRowWindow(uint8(r.Min.Y), uint8(r.Max.Y-1)),
		writeRAM(),
	); err != nil {
		return err
	}
	return d.c.Data(pix...)
}

// SetContrast adjusts the contrast current.
func (d *Display) SetContrast(level uint8) error {
	if err := d.send(setContrastCurrent(level)); err != nil {
		return err
	}
	d.contrast = level
	return nil
}

// SetRotation reprograms the remap register for the new orientation. The
// panel content is not redrawn; flush a matching framebuffer afterwards.
func (d *Display) SetRotation(rotation pixel.Rotation) error {
	if err := d.send(remapForRotation(rotation)); err != nil {
		return err
	}
	d.rotation = rotation
	return nil
}

// Invert switches between normal and inverted gray levels without touching
// the framebuffer.
func (d *Display) Invert(inverted bool) error {
	d.inverted = inverted
	return d.send(setDisplayMode(d.mode()))
}

// Show switches the panel on or off, RAM contents are preserved.
func (d *Display) Show(on bool) error {
	return d.send(setSleep(!on))
}

// SetGrayscaleTable programs a custom gamma table and enables it. Entries
// map gray levels 1 through 15 to pulse widths and must be non decreasing.
func (d *Display) SetGrayscaleTable(table [15]uint8) error {
	return d.send(setGrayscaleTable(table), enableGrayscaleTable())
}

// SetDefaultGrayscale restores the linear built in gamma table.
func (d *Display) SetDefaultGrayscale() error {
	return d.send(setDefaultGrayscale())
}

// Close puts the panel to sleep, cuts panel power and closes the connection.
func (d *Display) Close() error {
	if err := d.Show(false); err != nil {
		return err
	}
	if err := d.c.Power(gpio.Low); err != nil {
		return err
	}
	return d.c.Close()
}
