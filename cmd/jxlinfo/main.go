// Command jxlinfo reports basic-info, frame, and Exif details for a JPEG XL
// or PFM stream, and can optionally decode and dump the first frame as a PNG.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	stdpng "image/png"

	"github.com/jxlimg/codecs/imagecodec"
	"github.com/jxlimg/codecs/imageformats/jxl"
	"github.com/jxlimg/codecs/imageformats/pfm"
	"github.com/jxlimg/codecs/internal/exifmeta"
)

func main() {
	infile := flag.String("i", "", "input .jxl or .pfm file")
	outfile := flag.String("o", "", "optional output PNG file for the first frame")
	showExif := flag.Bool("exif", false, "dump every decodable Exif tag")
	cpuProfile := flag.Bool("cpuprofile", false, "write a CPU profile to ./cpu.pprof")
	flag.Parse()

	if *infile == "" {
		fmt.Println("usage: jxlinfo -i input.jxl [-o output.png] [-exif] [-cpuprofile]")
		os.Exit(1)
	}

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	data, err := os.ReadFile(*infile)
	if err != nil {
		log.Fatalf("jxlinfo: reading %s: %v", *infile, err)
	}

	if pfm.Probe(data) == nil {
		reportPFM(data)
		return
	}

	if err := jxl.Probe(data); err != nil {
		log.Fatalf("jxlinfo: %s is neither JPEG XL nor PFM: %v", *infile, err)
	}
	reportJXL(data, *outfile, *showExif)
}

func reportPFM(data []byte) {
	img, err := pfm.Decode(bytes.NewReader(data))
	if err != nil {
		log.Fatalf("jxlinfo: decoding PFM: %v", err)
	}
	fmt.Printf("format: PFM\n")
	fmt.Printf("size: %dx%d\n", img.Width, img.Height)
	fmt.Printf("colorspace: %v\n", img.Profile)
}

func reportJXL(data []byte, outfile string, showExif bool) {
	h := jxl.NewHandler(data)
	defer h.Close()

	img, err := h.Read()
	if err != nil {
		log.Fatalf("jxlinfo: decoding: %v", err)
	}

	fmt.Printf("format: JPEG XL\n")
	bounds := img.Bounds()
	fmt.Printf("size: %dx%d\n", bounds.Dx(), bounds.Dy())
	fmt.Printf("frame count: %d\n", h.ImageCount())
	fmt.Printf("loop count: %d\n", h.LoopCount())
	fmt.Printf("next frame delay: %dms\n", h.NextImageDelay())

	if size, ok := h.Option(imagecodec.OptionSize); ok {
		fmt.Printf("reported size option: %v\n", size)
	}
	if anim, ok := h.Option(imagecodec.OptionAnimation); ok {
		fmt.Printf("animated: %v\n", anim)
	}
	if orient, ok := h.Option(imagecodec.OptionImageTransformation); ok {
		fmt.Printf("orientation: %v\n", orient)
	}

	if showExif && len(h.ExifPayload()) > 0 {
		tags, err := exifmeta.DecodeAll(h.ExifPayload())
		if err != nil {
			log.Warnf("jxlinfo: exif dump failed: %v", err)
		}
		for name, value := range tags {
			fmt.Printf("exif %s: %s\n", name, value)
		}
	}

	if outfile != "" {
		f, err := os.Create(outfile)
		if err != nil {
			log.Fatalf("jxlinfo: creating %s: %v", outfile, err)
		}
		defer f.Close()
		if err := stdpng.Encode(f, img); err != nil {
			log.Fatalf("jxlinfo: encoding PNG: %v", err)
		}
	}
}
