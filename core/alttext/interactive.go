package alttext

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/erik-winther/tagpipe/core"
)

// Interactive prompts on in for alt text, one image at a time, echoing
// prompts to out. Entering "skip" leaves that image without alt text.
// End of input stops the prompting; remaining images stay empty.
func Interactive(images []core.Image, in io.Reader, out io.Writer) []core.Image {
	result := make([]core.Image, len(images))
	copy(result, images)
	if len(result) == 0 {
		return result
	}

	fmt.Fprintln(out, "You will be prompted for alt text for each image.")
	fmt.Fprintln(out, "Describe the content and purpose in one or two sentences.")

	scanner := bufio.NewScanner(in)
	for i := range result {
		fmt.Fprintf(out, "\nImage #%d (page %d)\n", result[i].Ordinal, result[i].Page)
		fmt.Fprint(out, "Enter alt text (or 'skip' to leave empty): ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(text, "skip") {
			continue
		}
		result[i].Alt = text
	}
	return result
}
