// internal/console/line.go
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go-tower-arena/internal/network"
)

// RunLines is the non-interactive client: commands are read line by line
// from in, results and broadcasts are written to out as they arrive.
func RunLines(ctx context.Context, c *network.Client, terrain string, in io.Reader, out io.Writer) error {
	var mu sync.Mutex
	printf := func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, format, args...)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.Done():
				return
			case m := <-c.Updates():
				if line, ok := FormatUpdate(m); ok {
					printf("%s\n", line)
				}
			}
		}
	}()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		reqCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		text, err := Execute(reqCtx, c, terrain, scanner.Text())
		cancel()
		switch {
		case errors.Is(err, ErrQuit):
			return nil
		case err != nil:
			printf("error: %v\n", err)
		case text != "":
			printf("%s\n", text)
		}
	}
	return scanner.Err()
}
