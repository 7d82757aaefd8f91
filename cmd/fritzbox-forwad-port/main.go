package main

import (
	"fmt"
	"io"
	"os"

	fritzbox "github.com/tpo/fritzbox-forwad-port"
)

const (
	exitOK          = 0
	exitBadAction   = 1
	exitMissingIP   = 2
	exitMissingPort = 3
	exitFailed      = 11
)

const usage = `usage: fritzbox-forwad-port (ENABLE|DISABLE) DESTINATION_IP PORT [COMMENT]
       fritzbox-forwad-port --help

Toggles a TCP port forwarding on a FRITZ!Box: PORT on the box is forwarded
to the same port on DESTINATION_IP. COMMENT names the forwarding in the
router UI and defaults to "Port PORT to DESTINATION_IP".

Connection settings are read from ~/.config/fritzbox-forwad-port/config
(override the path with FRITZBOX_CONFIG), a KEY=VALUE file that should be
readable only by you (chmod 600):

  FRITZBOX_HOST=fritz.box
  FRITZBOX_USERNAME=admin
  FRITZBOX_PASSWORD=secret
  FRITZBOX_CACERT=/home/you/fritzbox.pem

Environment variables of the same names take precedence over the file.
Without FRITZBOX_CACERT the router's TLS certificate is not verified.
Set FRITZBOX_DEBUG=true to dump the HTTP exchange.
`

const certHint = `If this used to work, the FRITZ!Box may have a new TLS certificate.
Fetch the current one with

  openssl s_client -connect fritz.box:49443 </dev/null 2>/dev/null | openssl x509 > fritzbox.pem

and point FRITZBOX_CACERT at it.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run holds the whole CLI flow so tests can drive it with their own
// arguments and capture its output.
func run(args []string, stdout, stderr io.Writer) int {
	var enabled bool
	switch action := first(args); action {
	case "ENABLE":
		enabled = true
	case "DISABLE":
		enabled = false
	case "--help", "-h", "help":
		fmt.Fprint(stdout, usage)
		return exitOK
	case "":
		fmt.Fprint(stdout, usage)
		return exitBadAction
	default:
		fmt.Fprintf(stderr, "unknown action %q, expected ENABLE or DISABLE\n", action)
		fmt.Fprint(stdout, usage)
		return exitBadAction
	}

	if len(args) < 2 || args[1] == "" {
		fmt.Fprintln(stderr, "missing DESTINATION_IP argument")
		return exitMissingIP
	}
	destinationIP := args[1]

	if len(args) < 3 || args[2] == "" {
		fmt.Fprintln(stderr, "missing PORT argument")
		return exitMissingPort
	}
	port := args[2]

	comment := ""
	if len(args) > 3 {
		comment = args[3]
	}
	if comment == "" {
		comment = fmt.Sprintf("Port %s to %s", port, destinationIP)
	}
	fmt.Fprintf(stdout, "comment: %s\n", comment)

	config, err := fritzbox.LoadConfig(fritzbox.DefaultConfigPath())
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stdout, "failed")
		return exitFailed
	}

	client, err := fritzbox.NewClient(config)
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stdout, "failed")
		return exitFailed
	}
	client.EnableDebug(fritzbox.DebugFromEnv())

	err = client.AddPortMapping(fritzbox.PortMapping{
		ExternalPort:   port,
		Protocol:       "TCP",
		InternalPort:   port,
		InternalClient: destinationIP,
		Enabled:        enabled,
		Description:    comment,
		LeaseDuration:  "0",
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprint(stderr, certHint)
		fmt.Fprintln(stdout, "failed")
		return exitFailed
	}

	fmt.Fprintln(stdout, "success")
	return exitOK
}

func first(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
