package contracts

// AmqpMessage is the message structure for AMQP.
type AmqpMessage struct {
	EmployeeID string `json:"employeeId"`
	Data       []byte `json:"data"`
}

// Routing keys
const (
	EventHistoryRecorded = "history.recorded"
	CommandHistoryPark   = "history.park"
)
