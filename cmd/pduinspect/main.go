// pduinspect decodes and re-serializes captured packet bytes through the
// pdu engine, for inspecting a buffer or checking that it round-trips.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mellowdrifter/pdulayers/internal/config"
	"github.com/mellowdrifter/pdulayers/internal/logging"
	"github.com/mellowdrifter/pdulayers/internal/pdu"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "pduinspect",
	Short: "Decode and re-encode packet buffers through the pdu engine",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	config.Register(rootCmd, &cfg)
	rootCmd.AddCommand(decodeCmd())
	rootCmd.AddCommand(encodeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func openInput() (io.ReadCloser, error) {
	if cfg.InFile == "" || cfg.InFile == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(cfg.InFile)
}

func openOutput() (io.WriteCloser, error) {
	if cfg.OutFile == "" || cfg.OutFile == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(cfg.OutFile)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// readHexPacket reads one whitespace-tolerant hex-encoded packet from r.
func readHexPacket(r io.Reader) ([]byte, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	var sb strings.Builder
	for scanner.Scan() {
		sb.WriteString(strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	clean := strings.ReplaceAll(sb.String(), " ", "")
	return hex.DecodeString(clean)
}

func decodeCmd() *cobra.Command {
	var dltName string
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a hex-encoded packet buffer and print its PDU chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(cfg.LogLevel, cfg.Pretty)
			defer logger.Sync()

			dlt, err := config.ResolveDLT(dltName)
			if err != nil {
				return err
			}

			in, err := openInput()
			if err != nil {
				return fmt.Errorf("opening input: %w", err)
			}
			defer in.Close()

			buf, err := readHexPacket(in)
			if err != nil {
				return fmt.Errorf("reading packet: %w", err)
			}

			logger.Debugw("decoding buffer", "bytes", len(buf), "dlt", dltName)
			p, err := pdu.FromBytes(pdu.Link(dlt), buf)
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}

			out, err := openOutput()
			if err != nil {
				return fmt.Errorf("opening output: %w", err)
			}
			defer out.Close()

			return printChain(out, logger, p)
		},
	}
	cmd.Flags().StringVar(&dltName, "dlt", "en10mb", "data-link type (null, en10mb, raw, ieee802_11, linux-sll)")
	return cmd
}

func encodeCmd() *cobra.Command {
	var dltName string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Decode a hex-encoded packet and re-serialize it, printing the result as hex",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(cfg.LogLevel, cfg.Pretty)
			defer logger.Sync()

			dlt, err := config.ResolveDLT(dltName)
			if err != nil {
				return err
			}

			in, err := openInput()
			if err != nil {
				return fmt.Errorf("opening input: %w", err)
			}
			defer in.Close()

			buf, err := readHexPacket(in)
			if err != nil {
				return fmt.Errorf("reading packet: %w", err)
			}

			p, err := pdu.FromBytes(pdu.Link(dlt), buf)
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}

			serialized, err := p.Serialize()
			if err != nil {
				return fmt.Errorf("serialize: %w", err)
			}
			logger.Debugw("re-serialized buffer", "in_bytes", len(buf), "out_bytes", len(serialized))

			out, err := openOutput()
			if err != nil {
				return fmt.Errorf("opening output: %w", err)
			}
			defer out.Close()

			_, err = fmt.Fprintln(out, hex.EncodeToString(serialized))
			return err
		},
	}
	cmd.Flags().StringVar(&dltName, "dlt", "en10mb", "data-link type (null, en10mb, raw, ieee802_11, linux-sll)")
	return cmd
}

// printChain writes one line per layer, outermost first, describing each
// PDU's kind and a handful of representative fields.
func printChain(w io.Writer, logger *zap.SugaredLogger, p pdu.PDU) error {
	depth := 0
	for cur := p; cur != nil; cur = cur.Inner() {
		if _, err := fmt.Fprintf(w, "%s%s %s\n", strings.Repeat("  ", depth), cur.Kind(), describe(cur)); err != nil {
			return err
		}
		depth++
	}
	if raw, ok := pdu.Find[*pdu.RawPDU](p); ok {
		logger.Debugw("chain bottoms out in raw payload", "bytes", len(raw.Payload()))
	}
	return nil
}

func describe(p pdu.PDU) string {
	switch v := p.(type) {
	case *pdu.Ethernet:
		return fmt.Sprintf("dst=%x src=%x etherType=0x%04x", v.Destination(), v.Source(), v.EtherType())
	case *pdu.ARP:
		return fmt.Sprintf("op=%d sender=%x target=%x", v.Operation(), v.SenderProtocol(), v.TargetProtocol())
	case *pdu.IPv4:
		return fmt.Sprintf("src=%v dst=%v proto=%d ttl=%d", v.Source(), v.Destination(), v.Protocol(), v.TTL())
	case *pdu.IPv6:
		return fmt.Sprintf("src=%x dst=%x nextHeader=%d", v.Source(), v.Destination(), v.NextHeader())
	case *pdu.TCP:
		return fmt.Sprintf("srcPort=%d dstPort=%d flags=0x%02x", v.SourcePort(), v.DestinationPort(), v.Flags())
	case *pdu.UDP:
		return fmt.Sprintf("srcPort=%d dstPort=%d", v.SourcePort(), v.DestinationPort())
	case *pdu.DHCP:
		msgType, _ := v.SearchMessageType()
		return fmt.Sprintf("xid=0x%08x messageType=%d", v.TransactionID(), msgType)
	case *pdu.Loopback:
		return fmt.Sprintf("family=0x%x", v.Family())
	case *pdu.LLC:
		return fmt.Sprintf("dsap=0x%02x ssap=0x%02x", v.DSAP(), v.SSAP())
	case *pdu.Dot11Beacon:
		ssid, _ := v.SSID()
		return fmt.Sprintf("ssid=%q interval=0x%04x", ssid, v.Interval())
	case *pdu.Dot11:
		return fmt.Sprintf("type=%d subtype=%d", v.Type(), v.Subtype())
	case *pdu.RawPDU:
		return fmt.Sprintf("%d bytes", len(v.Payload()))
	default:
		return ""
	}
}
