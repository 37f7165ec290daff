package interfaces

// Metrics receives session events. op is "register" or "deregister".
type Metrics interface {
	ObserveRegistration(op string, err error)
	ObservePoll(entries int, err error)
	ObserveEntry(protocol string)
}
