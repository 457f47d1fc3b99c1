package cli

import (
	"github.com/AlecAivazis/survey/v2"
)

// confirm asks a yes/no question on the terminal and defaults to no.
var confirm = func(message string) (bool, error) {
	ok := false
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: false}, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
