// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// codecs.go — constructors exposing the built-in object codecs to callers,
// since the implementations live under internal/.

package cookiejar

import "github.com/AndrewDonelson/cookiejar/internal/codec"

// JSONCodec returns the default JSON object codec.
func JSONCodec() Codec { return codec.JSON{} }

// MsgPackCodec returns the compact MessagePack object codec. Useful when
// object cookies are large and human readability of the stored entry does
// not matter.
func MsgPackCodec() Codec { return codec.MsgPack{} }
