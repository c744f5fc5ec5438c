package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"goknife/internal/exporter"
	"goknife/internal/ping"
	"goknife/pkg/goknife"
)

var cli struct {
	Debug bool `short:"d" help:"Enable debug logging."`

	PrettifyXML PrettifyXMLCmd `cmd:"" name:"prettify-xml" help:"Reformat XML with indentation and newlines."`
	NewUUID     NewUUIDCmd     `cmd:"" name:"new-uuid" help:"Generate a random (version 4) UUID."`
	Ping        PingCmd        `cmd:"" help:"Send ICMP echo requests to a host."`
}

type PrettifyXMLCmd struct {
	File     string `arg:"" optional:"" help:"XML file to read (stdin when omitted)." type:"existingfile"`
	Encoding string `short:"e" default:"utf8" enum:"utf8,iso-8859-1,windows-1252" help:"Source encoding of the input."`
	JSON     bool   `short:"j" help:"Dump the token stream as JSON instead of formatting."`
	Stats    bool   `short:"s" help:"Display token statistics instead of formatting."`
}

func (c *PrettifyXMLCmd) Run() error {
	data, err := readInput(c.File)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"bytes": len(data), "encoding": c.Encoding}).Debug("input read")

	utf8Data, err := goknife.ConvertToUTF8(data, c.Encoding)
	if err != nil {
		return err
	}

	tok := goknife.NewTokenizer(utf8Data)

	if c.JSON {
		return exporter.TokensJSON(tok)
	}

	if c.Stats {
		if _, err := tok.Tokenize(); err != nil {
			return err
		}
		exporter.DisplayStats(tok.GetStats())
		return nil
	}

	pretty, err := exporter.Prettify(tok)
	if err != nil {
		return err
	}
	logrus.WithField("tokens", tok.GetStats().TotalTokens).Debug("document formatted")

	fmt.Print(pretty)
	return nil
}

// readInput reads the named file, or stdin when no file is given and stdin
// is a pipe.
func readInput(file string) ([]byte, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error reading file: %w", err)
		}
		return data, nil
	}

	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, fmt.Errorf("error checking stdin: %w", err)
	}
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, fmt.Errorf("no input: provide a file argument or pipe data on stdin")
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("error reading from stdin: %w", err)
	}
	return data, nil
}

type NewUUIDCmd struct{}

func (c *NewUUIDCmd) Run() error {
	fmt.Println(goknife.NewUUID())
	return nil
}

type PingCmd struct {
	Host    string        `arg:"" help:"Hostname or IPv4 address to ping."`
	Count   int           `short:"c" default:"5" help:"Number of echo requests to send."`
	Timeout time.Duration `default:"1s" help:"How long to wait for each reply."`
}

func (c *PingCmd) Run() error {
	opts := ping.DefaultOptions()
	opts.Count = c.Count
	opts.Timeout = c.Timeout

	return ping.Ping(c.Host, opts, os.Stdout)
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("goknife"),
		kong.Description("A small collection of command line utilities."),
		kong.UsageOnError(),
	)

	logrus.SetOutput(os.Stderr)
	if cli.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	ctx.FatalIfErrorf(ctx.Run())
}
