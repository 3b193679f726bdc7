// Package events defines the typed inbound event contract of a live session.
//
// Every message the remote peer produces is demultiplexed into exactly one of
// these variants and fanned out to all registered subscribers, in
// registration order, before the next message is read.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - session.*
//   - user_input.*
//   - assistant_speech.*
//   - assistant_response.*
//   - tool_call.*
//   - turn_state.*
//
// session events
//
//   - SessionOpened (session.opened): the peer acknowledged session setup.
//   - SessionClosed (session.closed): the transport closed; carries the
//     close reason.
//
// user_input events
//
//   - UserTranscript (user_input.transcript): transcription of captured user
//     speech. IsFinal distinguishes interim snapshots from the terminal
//     transcript of the utterance.
//
// assistant_speech events
//
//   - AssistantAudioFrame (assistant_speech.frame): raw PCM chunk of
//     synthesized assistant speech.
//   - AssistantInterrupted (assistant_speech.interrupted): the peer preempted
//     its own playback; queued audio should be flushed immediately.
//   - AssistantTranscript (assistant_speech.transcript): transcription of the
//     assistant's spoken output, interim or final.
//
// assistant_response events
//
//   - AssistantContent (assistant_response.content): non-audio model content
//     parts for the current turn.
//
// tool_call events
//
//   - ToolCallRequested (tool_call.requested): a batch of structured function
//     invocations emitted by the model.
//   - ToolCallAcknowledged (tool_call.acknowledged): an invocation was
//     answered upstream.
//
// turn_state events
//
//   - TurnComplete (turn_state.completed): the peer finished the current
//     response turn.
package events
