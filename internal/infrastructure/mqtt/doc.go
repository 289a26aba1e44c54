// Package mqtt provides the MQTT client DX-Ascend Core uses to announce
// project changes.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// The core only publishes. Object tree and screen changes go to
// dxascend/core/event/{type} and the process status to dxascend/system/status,
// so editors and display clients can refresh without polling.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	topic := mqtt.Topics{}.CoreEvent("screen_created")
//	err = client.PublishJSON(topic, event)
package mqtt
