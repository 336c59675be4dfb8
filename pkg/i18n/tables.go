package i18n

var builtinTables = map[string]Table{
	"fr": {
		"nav": Table{
			"home":         "Accueil",
			"artisans":     "Artisans",
			"sejours":      "Séjours",
			"caravanes":    "Caravanes",
			"map":          "Carte",
			"favorites":    "Favoris",
			"reservations": "Réservations",
			"login":        "Connexion",
			"logout":       "Déconnexion",
			"admin":        "Administration",
		},
		"common": Table{
			"loading":  "Chargement...",
			"error":    "Une erreur est survenue",
			"retry":    "Réessayer",
			"save":     "Enregistrer",
			"cancel":   "Annuler",
			"delete":   "Supprimer",
			"search":   "Rechercher",
			"price":    "Prix",
			"currency": "DH",
		},
		"listing": Table{
			"book":        "Réserver",
			"perNight":    "par nuit",
			"perPerson":   "par personne",
			"description": "Description",
			"gallery":     "Galerie",
			"location":    "Localisation",
		},
		"auth": Table{
			"email":          "Adresse e-mail",
			"password":       "Mot de passe",
			"name":           "Nom complet",
			"phone":          "Téléphone",
			"signin":         "Se connecter",
			"signup":         "Créer un compte",
			"invalid":        "E-mail ou mot de passe invalide",
			"networkError":   "Erreur de connexion au serveur",
			"sessionExpired": "Votre session a expiré",
		},
		"payment": Table{
			"pay":      "Payer",
			"success":  "Paiement effectué avec succès",
			"declined": "Paiement refusé",
			"receipt":  "Télécharger le reçu",
		},
	},
	"en": {
		"nav": Table{
			"home":         "Home",
			"artisans":     "Artisans",
			"sejours":      "Stays",
			"caravanes":    "Caravans",
			"map":          "Map",
			"favorites":    "Favorites",
			"reservations": "Reservations",
			"login":        "Sign in",
			"logout":       "Sign out",
			"admin":        "Admin",
		},
		"common": Table{
			"loading":  "Loading...",
			"error":    "Something went wrong",
			"retry":    "Retry",
			"save":     "Save",
			"cancel":   "Cancel",
			"delete":   "Delete",
			"search":   "Search",
			"price":    "Price",
			"currency": "DH",
		},
		"listing": Table{
			"book":        "Book now",
			"perNight":    "per night",
			"perPerson":   "per person",
			"description": "Description",
			"gallery":     "Gallery",
			"location":    "Location",
		},
		"auth": Table{
			"email":          "Email address",
			"password":       "Password",
			"name":           "Full name",
			"phone":          "Phone",
			"signin":         "Sign in",
			"signup":         "Create account",
			"invalid":        "Invalid email or password",
			"networkError":   "Could not reach the server",
			"sessionExpired": "Your session has expired",
		},
		"payment": Table{
			"pay":      "Pay",
			"success":  "Payment successful",
			"declined": "Payment declined",
			"receipt":  "Download receipt",
		},
	},
	"ar": {
		"nav": Table{
			"home":         "الرئيسية",
			"artisans":     "الحرفيون",
			"sejours":      "الإقامات",
			"caravanes":    "القوافل",
			"map":          "الخريطة",
			"favorites":    "المفضلة",
			"reservations": "الحجوزات",
			"login":        "تسجيل الدخول",
			"logout":       "تسجيل الخروج",
			"admin":        "الإدارة",
		},
		"common": Table{
			"loading":  "جار التحميل...",
			"error":    "حدث خطأ ما",
			"retry":    "إعادة المحاولة",
			"save":     "حفظ",
			"cancel":   "إلغاء",
			"delete":   "حذف",
			"search":   "بحث",
			"price":    "السعر",
			"currency": "درهم",
		},
		"listing": Table{
			"book":        "احجز الآن",
			"perNight":    "لليلة الواحدة",
			"perPerson":   "للشخص الواحد",
			"description": "الوصف",
			"gallery":     "معرض الصور",
			"location":    "الموقع",
		},
		"auth": Table{
			"email":          "البريد الإلكتروني",
			"password":       "كلمة المرور",
			"name":           "الاسم الكامل",
			"phone":          "الهاتف",
			"signin":         "تسجيل الدخول",
			"signup":         "إنشاء حساب",
			"invalid":        "البريد الإلكتروني أو كلمة المرور غير صحيحة",
			"networkError":   "تعذر الوصول إلى الخادم",
			"sessionExpired": "انتهت صلاحية جلستك",
		},
		"payment": Table{
			"pay":      "ادفع",
			"success":  "تم الدفع بنجاح",
			"declined": "تم رفض الدفع",
			"receipt":  "تحميل الإيصال",
		},
	},
}
