package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pol3d/cardmail/pkg/card"
	"github.com/pol3d/cardmail/pkg/logger"
)

var (
	sendTo         string
	sendFile       string
	sendMime       string
	sendFilename   string
	sendSenderName string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one card image without starting the server",
	Example: `  cardmail send --to anna@example.com --file card.png --sender-name Ola
  cardmail send --to anna@example.com --file card.jpg --mime image/jpeg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, svc, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.FlushSentry(2 * time.Second)

		raw, err := rawRequestFromFile(sendFile)
		if err != nil {
			return err
		}
		raw.To = sendTo
		raw.Mime = sendMime
		raw.SenderName = sendSenderName
		if sendFilename != "" {
			raw.Filename = sendFilename
		}

		res, err := svc.Send(cmd.Context(), raw)
		if err != nil {
			return err
		}

		if res.ID == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "sent")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.ID)
		return nil
	},
}

// rawRequestFromFile reads an image and encodes it the way browsers do.
// The filename defaults to the file's base name without its extension.
func rawRequestFromFile(name string) (card.RawRequest, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return card.RawRequest{}, fmt.Errorf("read card image: %w", err)
	}

	base := filepath.Base(name)
	return card.RawRequest{
		Base64:   base64.StdEncoding.EncodeToString(data),
		Filename: base[:len(base)-len(filepath.Ext(base))],
	}, nil
}

func init() {
	sendCmd.Flags().StringVar(&sendTo, "to", "", "recipient email address")
	sendCmd.Flags().StringVarP(&sendFile, "file", "f", "", "path to the card image")
	sendCmd.Flags().StringVar(&sendMime, "mime", "", "media type of the image (default image/png)")
	sendCmd.Flags().StringVar(&sendFilename, "filename", "", "attachment name (default: file name)")
	sendCmd.Flags().StringVar(&sendSenderName, "sender-name", "", "name shown in the greeting")

	_ = sendCmd.MarkFlagRequired("to")
	_ = sendCmd.MarkFlagRequired("file")
}
