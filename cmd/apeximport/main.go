package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/apexconv/importer"
	"github.com/binzume/apexconv/rig"
	"github.com/binzume/apexconv/scene"
	"gopkg.in/yaml.v2"
)

func supported(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, e := range importer.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

func importArchive(path string, opt *importer.Options, rigPath, textures string) (*report, error) {
	s := scene.NewScene()
	s.TextureRoot = textures
	s.Listener = scene.NewListener(os.Stderr)
	if rigPath != "" {
		if _, err := rig.Load(s, rigPath); err != nil {
			return nil, err
		}
	}
	if !supported(path) {
		s.Listener.Warning("Unknown archive extension: %s", path)
	}
	err := importer.New(s, opt).Load(path)
	r := buildReport(path, s)
	if err != nil {
		r.Error = err.Error()
	}
	return r, err
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] archive.modelc...\n", os.Args[0])
		flag.PrintDefaults()
	}
	def := importer.DefaultOptions()
	scale := flag.Float64("scale", float64(def.Scale), "import scale")
	debugName := flag.Bool("debugname", false, "append mesh type and channel tokens to node names")
	dumpMat := flag.Bool("dumpmat", false, "dump material properties")
	forceStd := flag.Bool("forcestd", false, "create standard materials only")
	viewMat := flag.Bool("viewmat", false, "show materials in viewport")
	config := flag.String("config", "", "options file (yaml)")
	rigPath := flag.String("rig", "", "skeleton rig (.glb/.gltf)")
	textures := flag.String("textures", "", "texture directory")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return
	}

	opt := def
	if *config != "" {
		var err error
		if opt, err = importer.LoadOptions(*config); err != nil {
			log.Fatal(err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scale":
			opt.Scale = float32(*scale)
		case "debugname":
			opt.DebugName = *debugName
		case "dumpmat":
			opt.DumpMaterialInfo = *dumpMat
		case "forcestd":
			opt.ForceStandardMaterial = *forceStd
		case "viewmat":
			opt.EnableViewMaterial = *viewMat
		}
	})

	failed := false
	var reports []*report
	for _, path := range flag.Args() {
		r, err := importArchive(path, opt, *rigPath, *textures)
		if err != nil {
			log.Println(path, err)
			failed = true
		}
		if r != nil {
			reports = append(reports, r)
		}
	}

	out, err := yaml.Marshal(reports)
	if err != nil {
		log.Fatal(err)
	}
	os.Stdout.Write(out)
	if failed {
		os.Exit(1)
	}
}
