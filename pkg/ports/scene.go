package ports

// UnsubscribeFunc detaches a previously registered scene listener.
type UnsubscribeFunc func()

// SceneSource emits a notification whenever a scene is unloaded.
type SceneSource interface {
	// OnSceneUnloaded registers fn and returns the function that removes it.
	// The returned function must be safe to call more than once.
	OnSceneUnloaded(fn func(scene string)) UnsubscribeFunc
}
