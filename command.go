package ssd1322

// Controller command set. See the SSD1322 command reference for opcodes and
// parameter layouts.
const (
	opEnableGrayscaleTable   = 0x00
	opSetColumnAddress       = 0x15
	opWriteRAM               = 0x5C
	opReadRAM                = 0x5D
	opSetRowAddress          = 0x75
	opSetRemap               = 0xA0
	opSetDisplayStartLine    = 0xA1
	opSetDisplayOffset       = 0xA2
	opSetDisplayAllOff       = 0xA4
	opSetDisplayAllOn        = 0xA5
	opSetDisplayNormal       = 0xA6
	opSetDisplayInverse      = 0xA7
	opEnablePartialDisplay   = 0xA8
	opExitPartialDisplay     = 0xA9
	opSetFunction            = 0xAB
	opSetDisplayOff          = 0xAE
	opSetDisplayOn           = 0xAF
	opSetPhaseLength         = 0xB1
	opSetClock               = 0xB3
	opSetDisplayEnhancementA = 0xB4
	opSetGPIO                = 0xB5
	opSetSecondPrecharge     = 0xB6
	opSetGrayscaleTable      = 0xB8
	opSetDefaultGrayscale    = 0xB9
	opSetPrechargeVoltage    = 0xBB
	opSetVCOMH               = 0xBE
	opSetContrast            = 0xC1
	opSetMasterContrast      = 0xC7
	opSetMultiplexRatio      = 0xCA
	opSetDisplayEnhancementB = 0xD1
	opSetCommandLock         = 0xFD
)

// Controller RAM geometry. One RAM column holds one buffer byte, i.e. two
// horizontally adjacent pixels.
const (
	maxPixelWidth  = 480
	maxPixelHeight = 128
	numColumns     = maxPixelWidth / 2
	maxColumn      = numColumns - 1
	maxRow         = maxPixelHeight - 1
)

// maxCommandArgs is the largest parameter count of any command; the
// grayscale gamma table takes 15 entries.
const maxCommandArgs = 15

// command is one encoded controller operation: the opcode byte followed by
// n parameter bytes. Encoding never allocates and never fails; constructors
// clamp out of range arguments to the nearest valid value.
type command struct {
	opcode byte
	args   [maxCommandArgs]byte
	n      int
}

func (c command) params() []byte {
	return c.args[:c.n]
}

func cmd0(opcode byte) command {
	return command{opcode: opcode}
}

func cmd1(opcode, a byte) command {
	return command{opcode: opcode, args: [maxCommandArgs]byte{a}, n: 1}
}

func cmd2(opcode, a, b byte) command {
	return command{opcode: opcode, args: [maxCommandArgs]byte{a, b}, n: 2}
}

func clamp(v, lo, hi uint8) uint8 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// setColumnWindow restricts RAM writes to the inclusive column range
// [start, end], in RAM column units of two pixels.
func setColumnWindow(start, end uint8) command {
	return cmd2(opSetColumnAddress, clamp(start, 0, maxColumn), clamp(end, 0, maxColumn))
}

// setRowWindow restricts RAM writes to the inclusive row range [start, end].
func setRowWindow(start, end uint8) command {
	return cmd2(opSetRowAddress, clamp(start, 0, maxRow), clamp(end, 0, maxRow))
}

// writeRAM enables RAM writes; data bytes that follow go into the current
// address window.
func writeRAM() command {
	return cmd0(opWriteRAM)
}

// readRAM switches the controller to RAM read back. A write-only 4-wire SPI
// link cannot use it; it is provided for parallel bus transports.
func readRAM() command {
	return cmd0(opReadRAM)
}

// Remap bit fields. The remap command configures address increment
// direction, column and nibble mirroring, COM scan direction and the COM
// line layout in one pair of parameter bytes.
type incrementAxis byte

const (
	incrementHorizontal incrementAxis = 0x00
	incrementVertical   incrementAxis = 0x01
)

type columnRemap byte

const (
	columnForward columnRemap = 0x00
	columnReverse columnRemap = 0x02
)

type nibbleRemap byte

const (
	nibbleReverse nibbleRemap = 0x00
	nibbleForward nibbleRemap = 0x04
)

type comScanDirection byte

const (
	scanRowZeroFirst comScanDirection = 0x00
	scanRowZeroLast  comScanDirection = 0x10
)

type comLayout byte

// The second remap parameter byte per layout; dual progressive COM halves
// the maximum displayable height to 64 rows.
const (
	layoutProgressive     comLayout = 0x01
	layoutInterlaced      comLayout = 0x21
	layoutDualProgressive comLayout = 0x11
)

func setRemap(axis incrementAxis, col columnRemap, nib nibbleRemap, scan comScanDirection, layout comLayout) command {
	first := byte(axis) | byte(col) | byte(nib) | byte(scan) | byte(layout)&0x20
	second := byte(layout) & 0x1f
	return cmd2(opSetRemap, first, second)
}

func setStartLine(line uint8) command {
	return cmd1(opSetDisplayStartLine, clamp(line, 0, maxRow))
}

func setDisplayOffset(line uint8) command {
	return cmd1(opSetDisplayOffset, clamp(line, 0, maxRow))
}

type displayMode byte

const (
	modeAllOff  displayMode = opSetDisplayAllOff
	modeAllOn   displayMode = opSetDisplayAllOn
	modeNormal  displayMode = opSetDisplayNormal
	modeInverse displayMode = opSetDisplayInverse
)

func setDisplayMode(mode displayMode) command {
	return cmd0(byte(mode))
}

func enablePartialDisplay(start, end uint8) command {
	start = clamp(start, 0, maxRow)
	end = clamp(end, start, maxRow)
	return cmd2(opEnablePartialDisplay, start, end)
}

func exitPartialDisplay() command {
	return cmd0(opExitPartialDisplay)
}

// setFunction selects the VDD regulator source.
func setFunction(internalVDD bool) command {
	if internalVDD {
		return cmd1(opSetFunction, 0x01)
	}
	return cmd1(opSetFunction, 0x00)
}

// setSleep powers the display multiplexer and drivers off (true) or on
// (false).
func setSleep(enabled bool) command {
	if enabled {
		return cmd0(opSetDisplayOff)
	}
	return cmd0(opSetDisplayOn)
}

// setPhaseLengths sets the reset phase (5-31 DCLKs, odd values only) and
// the first pre-charge phase (3-15 DCLKs).
func setPhaseLengths(reset, firstPrecharge uint8) command {
	reset = clamp(reset, 5, 31)
	firstPrecharge = clamp(firstPrecharge, 3, 15)
	return cmd1(opSetPhaseLength, (reset-1)>>1|firstPrecharge<<4)
}

// setClock sets the oscillator frequency (0-15, higher is faster) and the
// DCLK divider exponent (0-10).
func setClock(frequency, divider uint8) command {
	return cmd1(opSetClock, clamp(frequency, 0, 15)<<4|clamp(divider, 0, 10))
}

func setDisplayEnhancementA(externalVSL, enhancedLowGS bool) command {
	vsl, gs := byte(0xa2), byte(0xb5)
	if externalVSL {
		vsl = 0xa0
	}
	if enhancedLowGS {
		gs = 0xfd
	}
	return cmd2(opSetDisplayEnhancementA, vsl, gs)
}

// setDisplayEnhancementB applies the reserved second enhancement setting
// from the reference sequence.
func setDisplayEnhancementB() command {
	return cmd2(opSetDisplayEnhancementB, 0x82, 0x20)
}

// setGPIO configures the controller's two GPIO pins; 0x00 disables both.
func setGPIO(state uint8) command {
	return cmd1(opSetGPIO, clamp(state, 0, 0x0f))
}

// setSecondPrecharge sets the second pre-charge period in DCLKs.
func setSecondPrecharge(period uint8) command {
	return cmd1(opSetSecondPrecharge, clamp(period, 0, 15))
}

// setGrayscaleTable uploads a custom gamma table: pulse widths for gray
// levels 1-15, each 0-180 and non-decreasing. It must be followed by
// enableGrayscaleTable to take effect.
func setGrayscaleTable(table [15]uint8) command {
	c := command{opcode: opSetGrayscaleTable, n: 15}
	var floor uint8
	for i, v := range table {
		floor = clamp(v, floor, 180)
		c.args[i] = floor
	}
	return c
}

func enableGrayscaleTable() command {
	return cmd0(opEnableGrayscaleTable)
}

func setDefaultGrayscale() command {
	return cmd0(opSetDefaultGrayscale)
}

// setPrechargeVoltage sets the pre-charge level from 0.2×Vcc (0) to
// 0.6×Vcc (31).
func setPrechargeVoltage(level uint8) command {
	return cmd1(opSetPrechargeVoltage, clamp(level, 0, 31))
}

// setVCOMH sets the COM deselect level from 0.72×Vcc (0) to 0.86×Vcc (7).
func setVCOMH(level uint8) command {
	return cmd1(opSetVCOMH, clamp(level, 0, 7))
}

func setContrastCurrent(level uint8) command {
	return cmd1(opSetContrast, level)
}

// setMasterContrast uniformly scales all gray levels; 0 is maximum dimming,
// 15 is full contrast.
func setMasterContrast(level uint8) command {
	return cmd1(opSetMasterContrast, clamp(level, 0, 15))
}

// setMultiplexRatio sets the number of active COM lines (16-128); the
// parameter byte is the ratio minus one.
func setMultiplexRatio(ratio uint8) command {
	return cmd1(opSetMultiplexRatio, clamp(ratio, 16, maxPixelHeight)-1)
}

// setCommandLock blocks (true) or accepts (false) all commands except the
// lock command itself.
func setCommandLock(locked bool) command {
	if locked {
		return cmd1(opSetCommandLock, 0x16)
	}
	return cmd1(opSetCommandLock, 0x12)
}
