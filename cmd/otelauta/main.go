package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"gioui.org/app"
	"github.com/kvirta/otelauta"
	"github.com/kvirta/otelauta/cmd"
	"github.com/kvirta/otelauta/editor"
	"github.com/kvirta/otelauta/editor/gioui"
	"github.com/kvirta/otelauta/oto"
	"github.com/kvirta/otelauta/pluck"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var memprofile = flag.String("memprofile", "", "write memory profile to `file`")
var defaultMidiInput = flag.String("midi-input", "", "connect MIDI input to matching device name prefix")

func main() {
	flag.Parse()
	var f *os.File
	if *cpuprofile != "" {
		var err error
		f, err = os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
	}
	audioContext, err := oto.NewContext()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	recoveryFile := ""
	if configDir, err := os.UserConfigDir(); err == nil {
		recoveryFile = filepath.Join(configDir, "otelauta", "otelauta-recovery")
	}
	broker := editor.NewBroker()
	midiContext := cmd.NewMidiContext(broker)
	if isFlagPassed("midi-input") {
		input, ok := editor.FindMIDIDeviceByPrefix(midiContext, *defaultMidiInput)
		if ok {
			if err := input.Open(); err != nil {
				log.Printf("failed to open MIDI input '%s': %v", input, err)
			}
		} else {
			log.Printf("no MIDI input device found with prefix '%s'", *defaultMidiInput)
		}
	}
	go editor.RunMIDIRouter(broker)
	model := editor.NewModel(broker, pluck.Synther{}, midiContext, recoveryFile)
	player := editor.NewPlayer(broker, pluck.Synther{})

	if a := flag.Args(); len(a) > 0 {
		f, err := os.Open(a[0])
		if err == nil {
			model.ReadDiagram(f) // ReadDiagram closes the file
		}
	}

	fretboardUi := gioui.NewFretboard(model)
	audioCloser := audioContext.Play(func(buf otelauta.AudioBuffer) error {
		player.Process(buf, midiContext)
		return nil
	})

	go func() {
		fretboardUi.Main()
		audioCloser.Close()
		midiContext.Close()
		broker.CloseMIDIRouter <- struct{}{}
		<-broker.FinishedMIDIRouter
		if *cpuprofile != "" {
			pprof.StopCPUProfile()
			f.Close()
		}
		if *memprofile != "" {
			f, err := os.Create(*memprofile)
			if err != nil {
				log.Fatal("could not create memory profile: ", err)
			}
			defer f.Close() // error handling omitted for example
			runtime.GC()    // get up-to-date statistics
			if err := pprof.WriteHeapProfile(f); err != nil {
				log.Fatal("could not write memory profile: ", err)
			}
		}
		os.Exit(0)
	}()
	app.Main()
}

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
