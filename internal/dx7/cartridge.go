package dx7

import (
	"fmt"
	"os"

	"nitro-core-dx/internal/midi"
)

// sysexHeader is the fixed 6-byte header every DX7 voice-bank SysEx dump
// begins with: F0 43 00 09 20 00 (universal non-realtime, manufacturer
// ID, device/sub IDs, 32-voice bulk format).
var sysexHeader = [6]byte{0xF0, 0x43, 0x00, 0x09, 0x20, 0x00}

const (
	sysexFileSize = 4104 // 6-byte header + 4096-byte payload + checksum + F7
	cartPageSize  = 4096
)

// LoadFactoryBanks loads the 8 factory voice banks (4096 bytes each, 8
// banks = 32768 bytes total) from a single file, making them available
// to SetBank. The original links these from an object-file blob built
// at compile time; this emulation reads them from disk instead, since
// no such blob ships in this module (see DESIGN.md).
func (d *DX7) LoadFactoryBanks(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ROMLoadError{Path: path, Err: err}
	}
	if len(data) != 8*cartPageSize {
		return &ROMLoadError{Path: path, Want: 8 * cartPageSize, Got: len(data)}
	}
	for i := 0; i < 8; i++ {
		copy(d.factoryBanks[i][:], data[i*cartPageSize:(i+1)*cartPageSize])
	}
	d.haveBanks = true
	return nil
}

// SetBank loads factory voice bank n (0-7, wrapping) into either the
// cartridge window (0x4000-0x4FFF, cart=true) or internal patch memory
// (0x1000-0x1FFF, cart=false).
func (d *DX7) SetBank(n int, cart bool) error {
	if !d.haveBanks {
		return fmt.Errorf("dx7: no factory voice banks loaded")
	}
	bank := d.factoryBanks[n&0x7]
	if cart {
		if !d.CartWriteProtectStatus() && d.saveCart && d.cartFile != "" {
			if err := d.CartSave(d.cartFile); err != nil && d.log != nil {
				d.log.LogSystem(0, fmt.Sprintf("can't save cartridge: %v", err), nil)
			}
		}
		d.CartPresent(true)
		d.cartFile = ""
		d.cartNum = n & 0x7
		copy(d.CPU.Memory[addrCartBase:addrCartEnd], bank[:])
		if d.ToGui != nil {
			d.ToGui.Push(midi.Message{Byte1: uint8(midi.CtrlCartridgeNum), Byte2: uint8(d.cartNum)})
		}
	} else {
		copy(d.CPU.Memory[0x1000:0x2000], bank[:])
	}
	return nil
}

// CartLoad reads a cartridge in *.SYX (System Exclusive) format from
// path into the cartridge memory window, validating the fixed header,
// payload size, and 7-bit two's-complement checksum.
func (d *DX7) CartLoad(path string) error {
	if !d.CartWriteProtectStatus() && d.saveCart && d.cartFile != "" {
		if err := d.CartSave(d.cartFile); err != nil && d.log != nil {
			d.log.LogSystem(0, fmt.Sprintf("can't save cartridge: %v", err), nil)
		}
	}
	d.cartFile = ""

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("dx7: open cartridge %q: %w", path, err)
	}
	if len(data) != sysexFileSize {
		return fmt.Errorf("dx7: %q is not a *.SYX file (size %d != %d)", path, len(data), sysexFileSize)
	}
	var header [6]byte
	copy(header[:], data[:6])
	if header != sysexHeader {
		return fmt.Errorf("dx7: %q has a bad SysEx header", path)
	}

	payload := data[6 : 6+cartPageSize]
	checksum := int(data[6+cartPageSize])
	for _, b := range payload {
		checksum += int(b)
	}
	if checksum&0x7F != 0 {
		return &ChecksumError{Path: path, Sum: checksum & 0x7F}
	}

	copy(d.CPU.Memory[addrCartBase:addrCartEnd], payload)
	d.cartFile = path
	d.cartNum = -1
	d.CartPresent(true)
	d.CartWriteProtect(true)
	if d.ToGui != nil {
		d.ToGui.SendBinary(midi.CtrlCartridgeName, []byte(path))
	}
	return nil
}

// CartSave writes the current cartridge memory window to path in *.SYX
// format, with a 7-bit two's-complement checksum trailer.
func (d *DX7) CartSave(path string) error {
	payload := d.CPU.Memory[addrCartBase:addrCartEnd]
	var checksum int8
	for _, b := range payload {
		checksum += int8(b)
	}
	checksum = int8((-int(checksum)) & 0x7F)

	out := make([]byte, 0, sysexFileSize)
	out = append(out, sysexHeader[:]...)
	out = append(out, payload...)
	out = append(out, byte(checksum), 0xF7)

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("dx7: save cartridge %q: %w", path, err)
	}
	return nil
}
