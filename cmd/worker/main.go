// Command worker runs the solver protocol over stdin/stdout, one JSON
// request per line. It lets non-HTTP clients (batch jobs, the puzzle
// generator pipeline) drive the solver without a running server.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/pentolab/pentomino-server/internal/protocol"
)

var (
	log = logrus.New()

	logPath string
	verbose bool
)

func init() {
	flag.StringVar(&logPath, "log", "", "write logs to this file as well as stderr")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
}

func setupLogging() {
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if logPath == "" {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logPath,
		MaxSize:    50, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      logrus.DebugLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Fatal("unable to set up log file: ", err)
	}
	log.AddHook(hook)
}

func main() {
	flag.Parse()
	setupLogging()

	engine := protocol.NewEngine()
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var (
			req  protocol.Request
			resp protocol.Response
		)
		if err := json.Unmarshal(line, &req); err != nil {
			log.Warn("malformed request: ", err)
			resp = protocol.Response{Kind: protocol.KindError, Error: "malformed request: " + err.Error()}
		} else {
			log.Debug("executing ", req.Kind, " request")
			resp = engine.Execute(req)
		}

		payload, err := json.Marshal(resp)
		if err != nil {
			log.Fatal("unable to marshal response: ", err)
		}
		payload = append(payload, '\n')
		if _, err := out.Write(payload); err != nil {
			log.Fatal("unable to write response: ", err)
		}
		if err := out.Flush(); err != nil {
			log.Fatal("unable to flush response: ", err)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatal("unable to read requests: ", err)
	}
}
