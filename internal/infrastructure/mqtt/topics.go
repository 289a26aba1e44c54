package mqtt

import "fmt"

// Topic prefixes for DX-Ascend MQTT traffic.
const (
	// TopicPrefixCore is the base for all core topics.
	TopicPrefixCore = "dxascend/core"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "dxascend/system"
)

// Topics provides builders for DX-Ascend MQTT topics.
// Using these helpers keeps topic naming consistent across the codebase.
//
//	topic := mqtt.Topics{}.CoreEvent("system_object_created")
//	// "dxascend/core/event/system_object_created"
type Topics struct{}

// CoreEvent returns the topic for a core change event.
//
// Example: dxascend/core/event/screen_created
func (Topics) CoreEvent(eventType string) string {
	return fmt.Sprintf("%s/event/%s", TopicPrefixCore, eventType)
}

// AllCoreEvents returns a pattern matching all core events.
//
// Pattern: dxascend/core/event/+
func (Topics) AllCoreEvents() string {
	return fmt.Sprintf("%s/event/+", TopicPrefixCore)
}

// SystemStatus returns the system status topic carrying online/offline state.
//
// Example: dxascend/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}
