// Package knxtp1 decodes a KNX TP1 (twisted pair, 9600 baud) fieldbus
// capture from raw logic-level samples down through UART framing,
// link-layer framing and, for data-carrying frames, the transport and
// application layers.
package knxtp1
