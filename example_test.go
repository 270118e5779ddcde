package hackterm_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/hackterm"
	"github.com/aretw0/hackterm/pkg/adapters/memory"
	"github.com/aretw0/hackterm/pkg/domain"
	"github.com/aretw0/hackterm/pkg/ports"
)

// ExampleNew wires a console to in-memory collaborators and animates two
// requests without delays.
func ExampleNew() {
	ctx := context.Background()
	scenes := memory.NewSceneEmitter()

	console, err := hackterm.New(ctx,
		hackterm.WithAudioSink(ports.AudioCueFuncs{
			Completed: func() { fmt.Println("cue: done") },
		}),
		hackterm.WithWidgets(memory.NewFactory(), memory.NewContainer()),
		hackterm.WithSceneSource(scenes),
		hackterm.WithInstanceGuard(memory.NewGuard()),
		hackterm.WithDelays(0, 0),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer console.Close(ctx)

	console.WriteLine("login: %s", "root")
	console.Write("password accepted")
	if err := console.Flush(ctx); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%q\n", console.Text())

	_ = console.AddVariable("door", map[string]any{"Locked": true, "Code": 4711}, domain.Visibility{"Code": false})
	fmt.Println(console.Variables())

	scenes.Unload("level-1")
	_ = console.Flush(ctx)
	fmt.Printf("%q %d\n", console.Text(), console.VariableCount())

	// Output:
	// cue: done
	// cue: done
	// ">\tlogin: root\n>\tpassword accepted\n\t"
	// [door]
	// cue: done
	// ">\t" 0
}
