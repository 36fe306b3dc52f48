// package tasks implements the long-running engines behind the CLI commands.
//
// The engines orchestrate course uploads, tree conversion, batch renames, and
// playlist purges. Each one depends on small interfaces (a ChannelService, a
// file converter) so tests can substitute doubles, and emits progress updates
// via channels for non-blocking status reporting to CLI/UI layers.
//
// UploadEngine is the core abstraction: it validates a course folder,
// natural-orders the videos, and performs sequential resumable uploads with a
// persisted resume index so an interrupted run continues where it stopped.
package tasks
