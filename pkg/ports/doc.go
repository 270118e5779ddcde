/*
Package ports defines the collaborators the console consumes.

These interfaces decouple the animation core from the host game: audio, scene
management, the widget toolkit, timing, and the single-instance guard.

# Key Interfaces

  - AudioCueSink: notified when a run starts and completes.
  - SceneSource: emits scene-unloaded notifications; subscribers must detach.
  - WidgetFactory / Container / Widget: spawn and destroy inspector widgets.
  - Clock: a real-time delay primitive.
  - InstanceGuard: refuses a second console for the same key.
*/
package ports
