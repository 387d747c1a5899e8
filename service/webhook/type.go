package webhook

// IService posts a reading payload to an external notification hook.
type IService interface {
	Post(payload map[string]interface{}) error
}
