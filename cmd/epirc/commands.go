package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/EllipticPIR/EllipticPIR/config"
	"github.com/EllipticPIR/EllipticPIR/log"
	"github.com/EllipticPIR/EllipticPIR/mgtable"
	"github.com/EllipticPIR/EllipticPIR/pir"
)

func workersFlag(cmd *cobra.Command) int {
	n, _ := cmd.Flags().GetInt("workers")
	return n
}

func initLogging(cmd *cobra.Command) {
	level, _ := cmd.Flags().GetString("log-level")
	log.Init(level)
}

func readKeyFile(path string, size int) ([]byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(buf) != size {
		return nil, fmt.Errorf("%s: expected %d bytes, got %d", path, size, len(buf))
	}
	return buf, nil
}

func newKeygenCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new private key",
		RunE: func(cmd *cobra.Command, args []string) error {
			initLogging(cmd)
			sk, err := pir.GeneratePrivateKey()
			if err != nil {
				log.Error("keygen", err, nil)
				return err
			}
			if out == "" {
				fmt.Println(hex.EncodeToString(sk[:]))
				return nil
			}
			return os.WriteFile(out, sk[:], 0o600)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "file to write the private key to (default: print as hex)")
	return cmd
}

func newPubkeyCmd() *cobra.Command {
	var privkeyPath, out string
	cmd := &cobra.Command{
		Use:   "pubkey",
		Short: "Derive a public key from a private key",
		RunE: func(cmd *cobra.Command, args []string) error {
			initLogging(cmd)
			raw, err := readKeyFile(privkeyPath, len(pir.PrivateKey{}))
			if err != nil {
				return err
			}
			var sk pir.PrivateKey
			copy(sk[:], raw)

			pk, err := pir.PublicKeyFromPrivateKey(&sk)
			if err != nil {
				log.Error("pubkey", err, nil)
				return err
			}
			if out == "" {
				fmt.Println(hex.EncodeToString(pk[:]))
				return nil
			}
			return os.WriteFile(out, pk[:], 0o600)
		},
	}
	cmd.Flags().StringVar(&privkeyPath, "privkey", "", "path to the 32-byte private key file (required)")
	cmd.Flags().StringVar(&out, "out", "", "file to write the public key to (default: print as hex)")
	_ = cmd.MarkFlagRequired("privkey")
	return cmd
}

func newEncryptCmd() *cobra.Command {
	var pubkeyPath, privkeyPath, out string
	var message uint64
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a small integer",
		RunE: func(cmd *cobra.Command, args []string) error {
			initLogging(cmd)

			var (
				c   *pir.Ciphertext
				err error
			)
			switch {
			case privkeyPath != "":
				raw, rerr := readKeyFile(privkeyPath, len(pir.PrivateKey{}))
				if rerr != nil {
					return rerr
				}
				var sk pir.PrivateKey
				copy(sk[:], raw)
				c, err = pir.EncryptFast(&sk, message, nil)
			case pubkeyPath != "":
				raw, rerr := readKeyFile(pubkeyPath, len(pir.PublicKey{}))
				if rerr != nil {
					return rerr
				}
				var pk pir.PublicKey
				copy(pk[:], raw)
				c, err = pir.Encrypt(&pk, message, nil)
			default:
				return fmt.Errorf("one of --pubkey or --privkey is required")
			}
			if err != nil {
				log.Error("encrypt", err, nil)
				return err
			}

			if out == "" {
				fmt.Println(hex.EncodeToString(c[:]))
				return nil
			}
			return os.WriteFile(out, c[:], 0o600)
		},
	}
	cmd.Flags().StringVar(&pubkeyPath, "pubkey", "", "path to the 32-byte public key file (standard path)")
	cmd.Flags().StringVar(&privkeyPath, "privkey", "", "path to the 32-byte private key file (fast path)")
	cmd.Flags().Uint64Var(&message, "message", 0, "plaintext integer to encrypt")
	cmd.Flags().StringVar(&out, "out", "", "file to write the ciphertext to (default: print as hex)")
	return cmd
}

func parseCounts(s string) (pir.IndexCounts, error) {
	parts := strings.Split(s, ",")
	counts := make(pir.IndexCounts, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --counts entry %q: %w", p, err)
		}
		counts[i] = n
	}
	return counts, nil
}

func newSelectCmd() *cobra.Command {
	var pubkeyPath, privkeyPath, out, countsStr string
	var idx uint64
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Build and encrypt a multi-dimensional selector",
		RunE: func(cmd *cobra.Command, args []string) error {
			initLogging(cmd)
			counts, err := parseCounts(countsStr)
			if err != nil {
				return err
			}
			workers := workersFlag(cmd)
			rec, stopMetrics := setupMetrics(cmd)
			defer stopMetrics()
			start := time.Now()

			var selector []byte
			switch {
			case privkeyPath != "":
				raw, rerr := readKeyFile(privkeyPath, len(pir.PrivateKey{}))
				if rerr != nil {
					return rerr
				}
				var sk pir.PrivateKey
				copy(sk[:], raw)
				selector, err = pir.SelectorCreateFast(&sk, counts, idx, workers)
			case pubkeyPath != "":
				raw, rerr := readKeyFile(pubkeyPath, len(pir.PublicKey{}))
				if rerr != nil {
					return rerr
				}
				var pk pir.PublicKey
				copy(pk[:], raw)
				selector, err = pir.SelectorCreate(&pk, counts, idx, workers)
			default:
				return fmt.Errorf("one of --pubkey or --privkey is required")
			}
			if err != nil {
				log.Error("select", err, map[string]any{"idx": idx})
				return err
			}
			rec.ObserveSelectorBuild(time.Since(start).Seconds(), len(selector)/pir.CipherSize)

			if out == "" {
				fmt.Println(hex.EncodeToString(selector))
				return nil
			}
			return os.WriteFile(out, selector, 0o600)
		},
	}
	cmd.Flags().StringVar(&pubkeyPath, "pubkey", "", "path to the 32-byte public key file (standard path)")
	cmd.Flags().StringVar(&privkeyPath, "privkey", "", "path to the 32-byte private key file (fast path)")
	cmd.Flags().StringVar(&countsStr, "counts", "", "comma-separated per-dimension element counts, e.g. 3,4 (required)")
	cmd.Flags().Uint64Var(&idx, "idx", 0, "flat index of the element to address")
	cmd.Flags().StringVar(&out, "out", "", "file to write the selector to (default: print as hex)")
	_ = cmd.MarkFlagRequired("counts")
	return cmd
}

func newDecryptReplyCmd(cfg *config.Config) *cobra.Command {
	var privkeyPath, mgPath, replyPath, out string
	var dimension, packing uint8
	var mmaxCap uint32
	cmd := &cobra.Command{
		Use:   "decrypt-reply",
		Short: "Decode a server reply",
		RunE: func(cmd *cobra.Command, args []string) error {
			initLogging(cmd)

			raw, err := readKeyFile(privkeyPath, len(pir.PrivateKey{}))
			if err != nil {
				return err
			}
			var sk pir.PrivateKey
			copy(sk[:], raw)

			reply, err := os.ReadFile(replyPath)
			if err != nil {
				return fmt.Errorf("reading %s: %w", replyPath, err)
			}
			rec, stopMetrics := setupMetrics(cmd)
			defer stopMetrics()

			start := time.Now()
			table, n, err := mgtable.Load(mgPath, mmaxCap)
			if err != nil {
				log.Error("decrypt-reply: load mG", err, map[string]any{"path": mgPath})
				return err
			}
			defer table.Close()
			if !table.Ready() {
				err := fmt.Errorf("mG table at %s only has %d of %d entries", mgPath, n, mmaxCap)
				log.Error("decrypt-reply", err, nil)
				return err
			}
			log.Logger().Debug().Dur("load_time", time.Since(start)).Msg("mG table loaded")

			decodeStart := time.Now()
			plaintext, err := pir.ReplyDecrypt(reply, &sk, dimension, packing, table, workersFlag(cmd))
			rec.ObserveReplyDecode(time.Since(decodeStart).Seconds(), err != nil)
			if err != nil {
				log.Error("decrypt-reply", err, map[string]any{"dimension": dimension, "packing": packing})
				return err
			}

			if out == "" {
				fmt.Println(hex.EncodeToString(plaintext))
				return nil
			}
			return os.WriteFile(out, plaintext, 0o600)
		},
	}
	cmd.Flags().StringVar(&privkeyPath, "privkey", "", "path to the 32-byte private key file (required)")
	cmd.Flags().StringVar(&mgPath, "mg", cfg.MgPath, "path to the mG discrete-log table file")
	cmd.Flags().StringVar(&replyPath, "reply", "", "path to the server reply bytes (required)")
	cmd.Flags().Uint8Var(&dimension, "dimension", 1, "number of nested PIR rounds")
	cmd.Flags().Uint8Var(&packing, "packing", 1, "bytes packed into each plaintext slot")
	cmd.Flags().Uint32Var(&mmaxCap, "mmax", uint32(cfg.MmaxCap), "maximum mG entries to load")
	cmd.Flags().StringVar(&out, "out", "", "file to write the decoded plaintext to (default: print as hex)")
	_ = cmd.MarkFlagRequired("privkey")
	_ = cmd.MarkFlagRequired("mg")
	_ = cmd.MarkFlagRequired("reply")
	return cmd
}
