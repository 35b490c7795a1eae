package services

import (
	"errors"
	"strings"

	"github.com/intelicop/console/internal/core/domain"
)

type noticeKey string

const (
	noticeGeneric      noticeKey = "notice.generic"
	noticeUnavailable  noticeKey = "notice.unavailable"
	noticeLoginFailed  noticeKey = "notice.login_failed"
	noticeLoginFirst   noticeKey = "notice.login_first"
	noticeForbidden    noticeKey = "notice.forbidden"
	noticeNotFound     noticeKey = "notice.not_found"
	noticeNotConfirmed noticeKey = "notice.not_confirmed"
	noticeNotAllowed   noticeKey = "notice.not_allowed"
	noticeValidation   noticeKey = "notice.validation"
)

var catalogue = map[domain.Language]map[noticeKey]string{
	domain.LanguageEnglish: {
		noticeGeneric:      "Something went wrong. Please try again.",
		noticeUnavailable:  "The records server could not be reached. Please try again.",
		noticeLoginFailed:  "Invalid username or password.",
		noticeLoginFirst:   "Please log in first.",
		noticeForbidden:    "Your role does not have access to this page.",
		noticeNotFound:     "The requested record was not found.",
		noticeNotConfirmed: "Nothing was changed.",
		noticeNotAllowed:   "That action is not available for this meeting.",
		noticeValidation:   "Please correct the following:",
	},
	domain.LanguageHindi: {
		noticeGeneric:      "कुछ गलत हो गया। कृपया पुनः प्रयास करें।",
		noticeUnavailable:  "रिकॉर्ड सर्वर से संपर्क नहीं हो सका। कृपया पुनः प्रयास करें।",
		noticeLoginFailed:  "अमान्य उपयोगकर्ता नाम या पासवर्ड।",
		noticeLoginFirst:   "कृपया पहले लॉग इन करें।",
		noticeForbidden:    "आपकी भूमिका को इस पृष्ठ की अनुमति नहीं है।",
		noticeNotFound:     "अनुरोधित रिकॉर्ड नहीं मिला।",
		noticeNotConfirmed: "कुछ भी नहीं बदला गया।",
		noticeNotAllowed:   "यह कार्रवाई इस मुलाकात के लिए उपलब्ध नहीं है।",
		noticeValidation:   "कृपया निम्नलिखित सुधारें:",
	},
	domain.LanguageSpanish: {
		noticeGeneric:      "Algo salió mal. Inténtelo de nuevo.",
		noticeUnavailable:  "No se pudo contactar con el servidor de registros. Inténtelo de nuevo.",
		noticeLoginFailed:  "Usuario o contraseña no válidos.",
		noticeLoginFirst:   "Inicie sesión primero.",
		noticeForbidden:    "Su rol no tiene acceso a esta página.",
		noticeNotFound:     "No se encontró el registro solicitado.",
		noticeNotConfirmed: "No se realizó ningún cambio.",
		noticeNotAllowed:   "Esa acción no está disponible para esta reunión.",
		noticeValidation:   "Corrija lo siguiente:",
	},
}

func translate(lang domain.Language, key noticeKey) string {
	if msgs, ok := catalogue[lang]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	return catalogue[domain.LanguageEnglish][key]
}

// Notice turns err into the single line shown to the operator. Validation
// errors list their fields; transport and backend failures share one
// generic message.
func Notice(err error, lang domain.Language) string {
	if err == nil {
		return ""
	}

	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, len(verrs))
		for i, e := range verrs {
			parts[i] = e.Message
		}
		return translate(lang, noticeValidation) + " " + strings.Join(parts, "; ")
	}

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return translate(lang, noticeLoginFirst)
	case errors.Is(err, domain.ErrForbidden):
		return translate(lang, noticeForbidden)
	case errors.Is(err, domain.ErrNotConfirmed):
		return translate(lang, noticeNotConfirmed)
	case errors.Is(err, domain.ErrNotAllowed):
		return translate(lang, noticeNotAllowed)
	case errors.Is(err, domain.ErrNotFound):
		return translate(lang, noticeNotFound)
	case errors.Is(err, domain.ErrUnavailable):
		return translate(lang, noticeUnavailable)
	}
	return translate(lang, noticeGeneric)
}

// LoginFailedNotice is shown when Authenticator.Login returns false.
func LoginFailedNotice(lang domain.Language) string {
	return translate(lang, noticeLoginFailed)
}
