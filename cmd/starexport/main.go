package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"starmesh/internal/export"
	"starmesh/internal/scene"
)

func main() {
	scenePath := flag.String("scene", "scene.json", "scene file to export")
	outDir := flag.String("out", ".", "output directory")
	combined := flag.Bool("combined", false, "write one OBJ containing every object")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	sc, err := scene.LoadFile(*scenePath)
	if err != nil {
		log.WithError(err).Fatal("scene unreadable")
	}
	if len(sc.Objects) == 0 {
		log.Info("scene has no objects, nothing to export")
		return
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.WithError(err).Fatal("output directory")
	}

	if *combined {
		name := strings.TrimSuffix(filepath.Base(*scenePath), filepath.Ext(*scenePath)) + ".obj"
		path := filepath.Join(*outDir, name)
		if err := writeFile(path, func(f *os.File) error { return export.WriteScene(f, sc) }); err != nil {
			log.WithError(err).Fatal("export failed")
		}
		log.WithFields(logrus.Fields{"path": path, "objects": len(sc.Objects)}).Info("scene exported")
		return
	}

	for _, obj := range sc.Objects {
		path := filepath.Join(*outDir, fileName(obj.Name))
		if err := writeFile(path, func(f *os.File) error { return export.WriteObject(f, obj) }); err != nil {
			log.WithError(err).WithField("object", obj.Name).Fatal("export failed")
		}
		log.WithFields(logrus.Fields{"path": path, "faces": obj.Mesh.TriangleCount()}).Debug("object exported")
	}
	log.WithFields(logrus.Fields{"dir": *outDir, "objects": len(sc.Objects)}).Info("scene exported")
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fileName(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, name)
	return clean + ".obj"
}
