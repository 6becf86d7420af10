// Package infra holds the adapters behind the core interfaces: the OpenAI
// plan client, the MQTT plan publisher, metrics sinks, logging and tracing.
package infra
