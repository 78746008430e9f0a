package notification

import (
	"fmt"
	"log"
	"os"
)

// ShowBlockingError reports a fatal startup problem to the user and returns
// once it has been acknowledged. The message is always logged and written to
// stderr as well.
func ShowBlockingError(title, message string) {
	log.Printf("%s: %s", title, message)
	fmt.Fprintf(os.Stderr, "%s: %s\n", title, message)
	showPlatformError(title, message)
}
