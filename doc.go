/*
Package hackterm is the "hacker console" of a 2D game client: a text terminal
that types messages out character by character and a strip of variable
inspector widgets next to it.

# Concept

Game logic submits write and clear requests. Every request is queued and
animated in submission order by a single worker, one character at a time, with
a real-time pause after each character that is not in the skip-set (space and
newline by default). Two animations never interleave. Hosts plug in the audio
cue sink, the widget toolkit and the scene manager through the interfaces in
package ports.

# Usage

	emitter := memory.NewSceneEmitter()
	console, err := hackterm.New(ctx,
		hackterm.WithAudioSink(sink),
		hackterm.WithWidgets(memory.NewFactory(), memory.NewContainer()),
		hackterm.WithSceneSource(emitter),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer console.Close(ctx)

	console.WriteLine("connecting to %s", host)
	console.AddVariable("door", door, domain.Visibility{"Code": false})

	// Later, when the level is torn down:
	emitter.Unload("level-1") // inspectors destroyed, console cleared
*/
package hackterm
