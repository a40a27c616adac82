package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"docledger/internal/token"
	id "docledger/pkg/domain"
)

func newTokenCmd() *cobra.Command {
	var (
		signingKey string
		address    string
		ttl        time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a caller token for local use",
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := id.ParseAddress(address)
			if err != nil {
				return err
			}
			minted, err := token.NewService(signingKey, "docledger").Mint(caller, ttl)
			if err != nil {
				return err
			}
			fmt.Println(minted)
			return nil
		},
	}
	cmd.Flags().StringVar(&signingKey, "signing-key", envOr("DOCLEDGER_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"), "server signing key")
	cmd.Flags().StringVar(&address, "address", "", "caller address (0x...)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}

func newRegisterCmd(c *client) *cobra.Command {
	var (
		file         string
		documentType string
		metadata     string
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Hash a document file and register its fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var resp struct {
				DocumentID string `json:"document_id"`
			}
			err = c.do("POST", "/registry/documents", map[string]string{
				"content_hash":  id.HashContent(content).String(),
				"document_type": documentType,
				"metadata":      metadata,
			}, &resp)
			if err != nil {
				return err
			}
			fmt.Println(resp.DocumentID)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to the document content")
	cmd.Flags().StringVar(&documentType, "type", "", "document type")
	cmd.Flags().StringVar(&metadata, "metadata", "", "optional annotation")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newVerifyCmd(c *client) *cobra.Command {
	var (
		file       string
		documentID string
	)
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Re-hash a document file and check it against a registered fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var resp struct {
				Matched bool `json:"matched"`
			}
			err = c.do("POST", "/registry/documents/"+documentID+"/verify", map[string]string{
				"content_hash": id.HashContent(content).String(),
			}, &resp)
			if err != nil {
				return err
			}
			if resp.Matched {
				fmt.Println("verified: document is unaltered")
				return nil
			}
			fmt.Println("MISMATCH: content does not match the registered fingerprint")
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to the document content")
	cmd.Flags().StringVar(&documentID, "id", "", "document id (0x...)")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newGetCmd(c *client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <document-id>",
		Short: "Fetch a document record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp map[string]any
			if err := c.do("GET", "/registry/documents/"+args[0], nil, &resp); err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	return cmd
}

func newListCmd(c *client) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your registered document ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				DocumentIDs []string `json:"document_ids"`
			}
			if err := c.do("GET", "/registry/documents", nil, &resp); err != nil {
				return err
			}
			for _, docID := range resp.DocumentIDs {
				fmt.Println(docID)
			}
			return nil
		},
	}
}

func newDeriveCmd(c *client) *cobra.Command {
	var (
		file      string
		owner     string
		timestamp int64
	)
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Pre-compute the document id for a file, owner, and timestamp",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			path := fmt.Sprintf("/registry/derive?content_hash=%s&owner=%s&timestamp=%d",
				id.HashContent(content).String(), owner, timestamp)
			var resp struct {
				DocumentID string `json:"document_id"`
			}
			if err := c.do("GET", path, nil, &resp); err != nil {
				return err
			}
			fmt.Println(resp.DocumentID)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to the document content")
	cmd.Flags().StringVar(&owner, "owner", "", "owner address (0x...)")
	cmd.Flags().Int64Var(&timestamp, "timestamp", 0, "registration unix timestamp")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("timestamp")
	return cmd
}

func newRequestCmd(c *client) *cobra.Command {
	var (
		documentType string
		requirements string
	)
	cmd := &cobra.Command{
		Use:   "request",
		Short: "Open a generation request with the oracle",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				RequestID uint64 `json:"request_id"`
			}
			err := c.do("POST", "/generation/requests", map[string]string{
				"document_type": documentType,
				"requirements":  requirements,
			}, &resp)
			if err != nil {
				return err
			}
			fmt.Println(resp.RequestID)
			return nil
		},
	}
	cmd.Flags().StringVar(&documentType, "type", "", "document type, e.g. NDA")
	cmd.Flags().StringVar(&requirements, "requirements", "", "generation requirements")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("requirements")
	return cmd
}

func newFulfillCmd(c *client) *cobra.Command {
	var (
		requestID string
		file      string
		metadata  string
	)
	cmd := &cobra.Command{
		Use:   "fulfill",
		Short: "Register generated content against your open request",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var resp struct {
				DocumentID string `json:"document_id"`
			}
			err = c.do("POST", "/generation/requests/"+requestID+"/fulfill", map[string]string{
				"content":  string(content),
				"metadata": metadata,
			}, &resp)
			if err != nil {
				return err
			}
			fmt.Println(resp.DocumentID)
			return nil
		},
	}
	cmd.Flags().StringVar(&requestID, "request", "", "local request id")
	cmd.Flags().StringVar(&file, "file", "", "path to the generated content")
	cmd.Flags().StringVar(&metadata, "metadata", "", "optional annotation")
	_ = cmd.MarkFlagRequired("request")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
