// Package ssd1322 is a driver for the Solomon Systech SSD1322 OLED display
// controller over 4-wire SPI.
//
// The controller drives 4-bit grayscale panels up to 480x128 pixels. A
// framebuffer is kept host side as a pixel.Gray4Image, drawn on with the
// standard image/draw tools or the draw helper package, and pushed to the
// panel RAM with Flush:
//
//	port, _ := spireg.Open("")
//	conn, err := ssd1322.OpenSPI(port, &ssd1322.SPIConfig{
//		DC:    gpioreg.ByName("GPIO24"),
//		Reset: gpioreg.ByName("GPIO25"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	display, err := ssd1322.New(conn, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err = display.Init(); err != nil {
//		log.Fatal(err)
//	}
//	img, _ := display.NewImage()
//	draw.Text(img, image.Pt(0, 12), color.White, nil, "hello")
//	if err = display.Flush(img); err != nil {
//		log.Fatal(err)
//	}
package ssd1322
