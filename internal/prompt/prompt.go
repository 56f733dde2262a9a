// Package prompt builds the instruction text sent to the completion endpoint.
package prompt

import "fmt"

const template = "Generate code to solve the following problem: %s. " +
	"Return the result as a JSON object where each key is a filename (e.g., \"main.py\", \"utils.js\") " +
	"and each value is the full content of that file. " +
	"Respond with the JSON object only. Example: " +
	Example

// Example anchors the expected output format. It is valid JSON.
const Example = `{"main.py": "print(\"Hello\")", "helper.py": "def add(a, b):\n    return a + b"}`

// Build embeds description verbatim in the instruction template.
func Build(description string) string {
	return fmt.Sprintf(template, description)
}
