package core

type (
	// Person identifies the student a log entry relates to.
	Person struct {
		ID       string
		Username string
		Email    string
	}

	// Logger accepts optional arguments after the message: errors, map[string]interface{} extras and a Person.
	Logger interface {
		Debug(msg string, args ...interface{})
		Info(msg string, args ...interface{})
		Warn(msg string, args ...interface{})
		Error(msg string, args ...interface{})
		Fatal(msg string, args ...interface{})
	}
)
