package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/kvirta/otelauta"
	"github.com/kvirta/otelauta/oto"
	"github.com/kvirta/otelauta/pluck"
	"github.com/kvirta/otelauta/render"
	"github.com/kvirta/otelauta/version"
)

func main() {
	stdout := flag.Bool("s", false, "Do not write files; write to standard output instead.")
	help := flag.Bool("h", false, "Show help.")
	directory := flag.String("o", "", "Directory where to output all files. The directory and its parents are created if needed. By default, everything is placed in the same directory where the original diagram file is.")
	play := flag.Bool("p", false, "Play the strum of the input diagrams (default behaviour when no other output is defined).")
	pngOut := flag.Bool("png", false, "Output the diagram as a .png image.")
	svgOut := flag.Bool("svg", false, "Output the diagram as an .svg document.")
	wavOut := flag.Bool("w", false, "Output the rendered strum as a .wav file. By default, saves stereo float32 buffer to disk.")
	pcm := flag.Bool("c", false, "Convert audio to 16-bit signed PCM when outputting.")
	theme := flag.String("t", "", "Use this theme instead of the one the diagram names.")
	scale := flag.Int("x", 2, "Scale factor of the exported image.")
	bpm := flag.Int("bpm", 120, "Strum tempo for playing and .wav export.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	if !*pngOut && !*svgOut && !*wavOut {
		*play = true // if the user gives nothing to output, then the default behaviour is just to play the file
	}
	var audioContext *oto.OtoContext
	if *play {
		var err error
		audioContext, err = oto.NewContext()
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not acquire oto AudioContext: %v\n", err)
			os.Exit(1)
		}
	}
	themes, err := render.LoadThemes()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load themes: %v\n", err)
		os.Exit(1)
	}
	process := func(filename string) error {
		output := func(extension string, contents []byte) error {
			if *stdout {
				fmt.Print(string(contents))
				return nil
			}
			_, name := filepath.Split(filename)
			dir := *directory
			if dir == "" {
				dir = filepath.Dir(filename)
			}
			name = strings.TrimSuffix(name, filepath.Ext(name)) + extension
			f := filepath.Join(dir, name)
			if dir != "" {
				if err := os.MkdirAll(dir, os.ModePerm); err != nil {
					return fmt.Errorf("could not create output directory %v: %v", dir, err)
				}
			}
			err := os.WriteFile(f, contents, 0644)
			if err != nil {
				return fmt.Errorf("could not write file %v: %v", f, err)
			}
			return nil
		}
		inputBytes, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("could not read file %v: %v", filename, err)
		}
		var diagram otelauta.Diagram
		if errJSON := json.Unmarshal(inputBytes, &diagram); errJSON != nil {
			if errYaml := yaml.Unmarshal(inputBytes, &diagram); errYaml != nil {
				return fmt.Errorf("the diagram could not be parsed as .json (%v) or .yml (%v)", errJSON, errYaml)
			}
		}
		if err := diagram.Validate(); err != nil {
			return fmt.Errorf("invalid diagram: %v", err)
		}
		diagram.Clamp()
		themeName := diagram.Theme
		if *theme != "" {
			themeName = *theme
		}
		if *pngOut || *svgOut {
			r := render.NewRenderer()
			r.RenderAll(diagram, render.ThemeByName(themes, themeName), float64(*scale))
			if *pngOut {
				var buf bytes.Buffer
				if err := r.WritePNG(&buf); err != nil {
					return fmt.Errorf("could not generate .png file: %v", err)
				}
				if err := output(".png", buf.Bytes()); err != nil {
					return fmt.Errorf("error outputting .png file: %v", err)
				}
			}
			if *svgOut {
				var buf bytes.Buffer
				if err := r.WriteSVG(&buf); err != nil {
					return fmt.Errorf("could not generate .svg file: %v", err)
				}
				if err := output(".svg", buf.Bytes()); err != nil {
					return fmt.Errorf("error outputting .svg file: %v", err)
				}
			}
		}
		if *play || *wavOut {
			strum := diagram.AppendStrum(nil)
			buffer, err := otelauta.Play(pluck.Synther{}, strum, *bpm, nil)
			if err != nil {
				return fmt.Errorf("otelauta.Play failed: %v", err)
			}
			if *wavOut {
				wav, err := buffer.Wav(*pcm)
				if err != nil {
					return fmt.Errorf("could not generate .wav file: %v", err)
				}
				if err := output(".wav", wav); err != nil {
					return fmt.Errorf("error outputting .wav file: %v", err)
				}
			}
			if *play {
				playBuffer(audioContext, buffer)
			}
		}
		return nil
	}
	retval := 0
	for _, param := range flag.Args() {
		if info, err := os.Stat(param); err == nil && info.IsDir() {
			jsonfiles, err := filepath.Glob(filepath.Join(param, "*.json"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not glob the path %v for json files: %v\n", param, err)
				retval = 1
				continue
			}
			ymlfiles, err := filepath.Glob(filepath.Join(param, "*.yml"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not glob the path %v for yml files: %v\n", param, err)
				retval = 1
				continue
			}
			files := append(ymlfiles, jsonfiles...)
			for _, file := range files {
				err := process(file)
				if err != nil {
					fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", file, err)
					retval = 1
				}
			}
		} else {
			err := process(param)
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", param, err)
				retval = 1
			}
		}
	}
	os.Exit(retval)
}

// playBuffer plays the rendered buffer through the audio context and returns
// when all of it has been handed to the device.
func playBuffer(audioContext *oto.OtoContext, buffer otelauta.AudioBuffer) {
	var pos int
	var once sync.Once
	done := make(chan struct{})
	closer := audioContext.Play(func(buf otelauta.AudioBuffer) error {
		n := copy(buf, buffer[pos:])
		pos += n
		for i := n; i < len(buf); i++ {
			buf[i] = [2]float32{}
		}
		if pos >= len(buffer) {
			once.Do(func() { close(done) })
		}
		return nil
	})
	<-done
	closer.Close()
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Otelauta command line utility for exporting .yml/.json diagram files.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}
