// Command client is an interactive REPL against a kvd server, grounded on
// original_source/server/tcp_client.cpp's connect/send/recv shape but
// generalized from a single fire-and-forget message into a line-at-a-time
// session with readline-style editing via golang.org/x/term.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"

	"golang.org/x/term"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:6390", "Server address to connect to.")
	flag.Parse()

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		log.Fatalf("failed to connect to %s: %v", *addr, err)
	}
	defer conn.Close()
	fmt.Printf("connected to %s\n", *addr)

	reader := bufio.NewReader(conn)

	if stdinFd := int(os.Stdin.Fd()); term.IsTerminal(stdinFd) {
		runInteractive(conn, reader, stdinFd)
		return
	}
	runScripted(conn, reader, os.Stdin)
}

// runInteractive drives the REPL with readline-style editing, restoring the
// terminal to its original mode on exit the same way a teacher SSH session
// would (term.MakeRaw + restore around the session lifetime).
func runInteractive(conn net.Conn, reader *bufio.Reader, stdinFd int) {
	oldState, err := term.MakeRaw(stdinFd)
	if err != nil {
		log.Fatalf("failed to enter raw terminal mode: %v", err)
	}
	defer term.Restore(stdinFd, oldState)

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, "kvd> ")

	for {
		line, err := t.ReadLine()
		if err != nil {
			return
		}
		if line == "" {
			continue
		}
		if line == "QUIT" || line == "quit" {
			return
		}
		reply := roundTrip(conn, reader, line)
		fmt.Fprintf(t, "%s\r\n", reply)
	}
}

// runScripted reads commands line-by-line from in (used for piped input and
// non-interactive test harnesses, where raw terminal mode is unavailable).
func runScripted(conn net.Conn, reader *bufio.Reader, in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fmt.Println(roundTrip(conn, reader, line))
	}
}

func roundTrip(conn net.Conn, reader *bufio.Reader, line string) string {
	if _, err := conn.Write([]byte(line + "\n")); err != nil {
		return fmt.Sprintf("-ERR connection write failed: %v", err)
	}
	reply, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Sprintf("-ERR connection read failed: %v", err)
	}
	return reply[:len(reply)-1]
}
