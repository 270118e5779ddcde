/*
Package domain contains the core models of the hacker console.

It defines the requests the animator consumes, the events it emits, the prompt
grammar constants, and the payloads shown by variable inspector widgets. This
package is kept free of I/O, timing and rendering concerns.

# Key Entities

  - Request: a Write, ClearRange, ClearAll or ClearLastLine unit of work.
  - RunEvent / StepEvent: lifecycle and per-character notifications.
  - LifecycleHooks: the observer set the animator drives.
  - VariablePayload: the name, value and visible attributes of an inspector entry.
*/
package domain
