// Package publish provides the message-publication layer of the caravel client.
//
// This package includes:
//   - Target: Resolves a logical destination into an exchange/routing-key pair
//   - VerifiedQueueTarget: A target that checks queue existence before first use
//   - Message: An immutable, ready-to-publish bundle of target, body, and properties
//   - Build / NewFactory: Construction paths that merge properties and invoke a Serializer
//
// All types here are inert values. They are handed to an external channel-owning
// actor that calls Apply against a live channel and enforces the reliability
// contract carried by DropIfNoChannel: confirmed messages must be retried until
// the broker acknowledges them, while best-effort messages may be discarded
// when no channel is available.
package publish
